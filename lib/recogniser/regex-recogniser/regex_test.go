package regex_recogniser

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
)

const testPatterns = `
JUDGE:
  - 'Judge [A-Z][a-z]+'
DATE:
  - '\d{4}-\d{2}-\d{2}'
GPE:
  - '\bState\b'
`

type RegexSuite struct {
	suite.Suite
}

func TestRegexSuite(t *testing.T) {
	suite.Run(t, new(RegexSuite))
}

func (s *RegexSuite) TestRecognise() {
	c, err := Parse([]byte(testPatterns))
	s.Require().NoError(err)

	entities, err := c.Recognise(context.Background(), "John v. State, decided 2021-05-01 by Judge Smith.")
	s.Require().NoError(err)
	s.Equal([]lib.Entity{
		{Text: "State", Label: "GPE", Start: 8, End: 13},
		{Text: "2021-05-01", Label: "DATE", Start: 23, End: 33},
		{Text: "Judge Smith", Label: "JUDGE", Start: 37, End: 48},
	}, entities)
}

func (s *RegexSuite) TestRecogniseSameStartKeepsFileOrder() {
	c, err := Parse([]byte("COURT:\n  - 'High Court'\nORG:\n  - 'High'\n"))
	s.Require().NoError(err)

	entities, err := c.Recognise(context.Background(), "High Court")
	s.Require().NoError(err)
	s.Equal([]lib.Entity{
		{Text: "High Court", Label: "COURT", Start: 0, End: 10},
		{Text: "High", Label: "ORG", Start: 0, End: 4},
	}, entities)
}

func (s *RegexSuite) TestRecogniseEmpty() {
	c, err := Parse([]byte(testPatterns))
	s.Require().NoError(err)

	for _, text := range []string{"", "nothing here"} {
		entities, err := c.Recognise(context.Background(), text)
		s.NoError(err)
		s.NotNil(entities)
		s.Empty(entities)
	}
}

func (s *RegexSuite) TestRecogniseSkipsEmptyMatches() {
	c, err := Parse([]byte("DATE:\n  - '\\d*'\n"))
	s.Require().NoError(err)

	entities, err := c.Recognise(context.Background(), "on 12 May")
	s.Require().NoError(err)
	s.Equal([]lib.Entity{{Text: "12", Label: "DATE", Start: 3, End: 5}}, entities)
}

func (s *RegexSuite) TestParseErrors() {
	for _, doc := range []string{
		"DATE: '\\d+'",
		"DATE:\n  - '('\n",
		"DATE:\n  - 12\n",
		"- not a map",
	} {
		_, err := Parse([]byte(doc))
		s.Error(err, doc)
	}
}

func (s *RegexSuite) TestLoad() {
	dir, err := ioutil.TempDir("", "patterns")
	s.Require().NoError(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "patterns.yml")
	s.Require().NoError(ioutil.WriteFile(path, []byte(testPatterns), 0o600))

	c, err := Load(path)
	s.Require().NoError(err)
	s.Len(c.(*client).patterns, 3)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	s.Error(err)
}

func (s *RegexSuite) TestShippedPatternsCompile() {
	c, err := Load("../../../config/patterns.yml")
	s.Require().NoError(err)

	entities, err := c.Recognise(context.Background(), "Criminal Appeal No. 1234 of 2019 under Section 302 of the Indian Penal Code was decided on 12 March 2020.")
	s.Require().NoError(err)
	labels := map[string]bool{}
	for _, entity := range entities {
		labels[entity.Label] = true
	}
	s.True(labels["CASE_NUMBER"])
	s.True(labels["PROVISION"])
	s.True(labels["STATUTE"])
	s.True(labels["DATE"])
}
