package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/gen/mocks"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/analytics"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/extract"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/highlight"
)

const judgment = "John v. State, decided 2021-05-01 by Judge Smith."

var judgmentEntities = []lib.Entity{
	{Text: "State", Label: "GPE", Start: 8, End: 13},
	{Text: "2021-05-01", Label: "DATE", Start: 23, End: 33},
	{Text: "Judge Smith", Label: "JUDGE", Start: 37, End: 48},
}

type ControllerSuite struct {
	suite.Suite
	recogniser *mocks.Client
	controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.recogniser = &mocks.Client{}
	s.controller = newController(s.recogniser, highlight.DefaultPalette(), 1000)
}

func (s *ControllerSuite) requireHttpError(err error, code int, message string) {
	var httpErr HttpError
	s.Require().True(errors.As(err, &httpErr), "expected an HttpError, got %v", err)
	s.Equal(code, httpErr.code)
	s.Equal(message, httpErr.message)
}

func (s *ControllerSuite) open(name string) *os.File {
	f, err := os.Open("testdata/" + name)
	s.Require().Nil(err)
	s.T().Cleanup(func() { _ = f.Close() })
	return f
}

func (s *ControllerSuite) Test_controller_Process_manualText() {
	s.recogniser.On("Recognise", mock.Anything, judgment).Return(judgmentEntities, nil).Once()

	result, err := s.Process(context.Background(), ManualInput{Text: judgment})
	s.Require().Nil(err)

	s.Equal(ModeText, result.Mode)
	s.Equal(judgment, result.Text)
	s.Empty(result.Preview)
	s.Equal([]analytics.Row{
		{Entity: "State", Type: "GPE"},
		{Entity: "2021-05-01", Type: "DATE"},
		{Entity: "Judge Smith", Type: "JUDGE"},
	}, result.Rows)
	s.Equal(10, result.Summary.Words)
	s.Len(result.Legend, 14)

	highlighted := string(result.Highlighted)
	for _, color := range []string{"#4682B4", "#FFD700", "#32CD32"} {
		s.Contains(highlighted, "background: "+color)
	}
	s.recogniser.AssertExpectations(s.T())
}

func (s *ControllerSuite) Test_controller_Process_emptyManualText() {
	_, err := s.Process(context.Background(), ManualInput{Text: ""})

	s.requireHttpError(err, 422, msgNoText)
	s.True(errors.Is(err, extract.ErrEmptyText))
	s.recogniser.AssertNotCalled(s.T(), "Recognise", mock.Anything, mock.Anything)
}

func (s *ControllerSuite) Test_controller_Process_uploads() {
	tests := []struct {
		name     string
		input    UploadInput
		wantText string
	}{
		{
			name:     "plain text is used as is",
			input:    UploadInput{Filename: "judgment.txt", ContentType: "text/plain", Body: s.open("judgment.txt")},
			wantText: judgment + "\n",
		},
		{
			name:     "pdf pages are extracted",
			input:    UploadInput{Filename: "judgment.pdf", ContentType: "application/pdf", Body: s.open("judgment.pdf")},
			wantText: judgment,
		},
		{
			name:     "pdf pages are joined by a single newline",
			input:    UploadInput{Filename: "judgment-pages.pdf", ContentType: "application/pdf", Body: s.open("judgment-pages.pdf")},
			wantText: "John v. State, decided 2021-05-01\nby Judge Smith.",
		},
		{
			name:     "type comes from the extension when the browser sends none",
			input:    UploadInput{Filename: "judgment.pdf", Body: s.open("judgment.pdf")},
			wantText: judgment,
		},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		s.recogniser.On("Recognise", mock.Anything, tt.wantText).Return([]lib.Entity{}, nil).Once()

		result, err := s.Process(context.Background(), tt.input)
		s.Require().Nil(err)
		s.Equal(ModeUpload, result.Mode)
		s.Equal(tt.input.Filename, result.Filename)
		s.Equal(tt.wantText, result.Text)
		s.Equal(tt.wantText, result.Preview)
		s.False(result.Truncated)
		s.Empty(result.Rows)
		s.NotContains(string(result.Highlighted), "<mark")
	}
	s.recogniser.AssertExpectations(s.T())
}

func (s *ControllerSuite) Test_controller_Process_unusableUploads() {
	tests := []struct {
		name    string
		input   UploadInput
		wantErr error
	}{
		{
			name:    "empty text file",
			input:   UploadInput{Filename: "empty.txt", ContentType: "text/plain", Body: strings.NewReader("")},
			wantErr: extract.ErrEmptyText,
		},
		{
			name:    "text file that is not utf-8",
			input:   UploadInput{Filename: "latin1.txt", ContentType: "text/plain", Body: s.open("latin1.txt")},
			wantErr: extract.ErrDecoding,
		},
		{
			name:    "pdf that is not a pdf",
			input:   UploadInput{Filename: "judgment.pdf", ContentType: "application/pdf", Body: s.open("judgment.txt")},
			wantErr: extract.ErrUnreadablePDF,
		},
		{
			name:    "empty pdf upload",
			input:   UploadInput{Filename: "empty.pdf", ContentType: "application/pdf", Body: bytes.NewReader(nil)},
			wantErr: extract.ErrUnreadablePDF,
		},
		{
			name:    "image",
			input:   UploadInput{Filename: "scan.png", ContentType: "image/png", Body: strings.NewReader("\x89PNG")},
			wantErr: extract.ErrUnsupportedType,
		},
	}
	for _, tt := range tests {
		s.T().Log(tt.name)
		result, err := s.Process(context.Background(), tt.input)
		s.Nil(result)
		s.requireHttpError(err, 422, msgExtraction)
		s.True(errors.Is(err, tt.wantErr), "%s: %v", tt.name, err)
	}
	s.recogniser.AssertNotCalled(s.T(), "Recognise", mock.Anything, mock.Anything)
}

func (s *ControllerSuite) Test_controller_Process_previewIsCut() {
	s.controller = newController(s.recogniser, highlight.DefaultPalette(), 5)
	s.recogniser.On("Recognise", mock.Anything, "Δικαστήριο").Return([]lib.Entity{}, nil)

	result, err := s.Process(context.Background(), UploadInput{Filename: "a.txt", Body: strings.NewReader("Δικαστήριο")})
	s.Require().Nil(err)
	s.Equal("Δικασ", result.Preview)
	s.True(result.Truncated)
	s.Equal("Δικαστήριο", result.Text)
}

func (s *ControllerSuite) Test_controller_Process_recogniserError() {
	s.recogniser.On("Recognise", mock.Anything, judgment).Return(nil, errors.New("model unavailable"))

	result, err := s.Process(context.Background(), ManualInput{Text: judgment})
	s.Nil(result)
	s.requireHttpError(err, 502, msgRecognition)
	s.Contains(err.Error(), "model unavailable")
}

func (s *ControllerSuite) Test_controller_Export() {
	s.recogniser.On("Recognise", mock.Anything, judgment).Return(judgmentEntities, nil)

	b, err := s.Export(context.Background(), judgment)
	s.Require().Nil(err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	s.Require().Nil(err)
	defer f.Close()
	rows, err := f.GetRows(analytics.SheetName)
	s.Require().Nil(err)
	s.Equal([][]string{
		{"Entity", "Type"},
		{"State", "GPE"},
		{"2021-05-01", "DATE"},
		{"Judge Smith", "JUDGE"},
	}, rows)
}

func (s *ControllerSuite) Test_controller_Export_emptyText() {
	_, err := s.Export(context.Background(), "")
	s.requireHttpError(err, 422, msgNoText)
	s.recogniser.AssertNotCalled(s.T(), "Recognise", mock.Anything, mock.Anything)
}
