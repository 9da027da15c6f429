/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/analytics"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/extract"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/highlight"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/text"
)

const (
	msgExtraction  = "Could not extract text. Please upload a valid file."
	msgNoText      = "Please enter some text."
	msgRecognition = "Entity recognition failed. Please try again."
	msgInternal    = "Something went wrong. Please try again."
)

type Mode string

const (
	ModeUpload Mode = "upload"
	ModeText   Mode = "text"
)

func parseMode(s string) Mode {
	if Mode(s) == ModeText {
		return ModeText
	}
	return ModeUpload
}

// Input is either an UploadInput or a ManualInput.
type Input interface {
	mode() Mode
}

// UploadInput is a file as received from the browser. Body is read once and never closed here.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (UploadInput) mode() Mode { return ModeUpload }

// ManualInput is text typed into the form, submitted with the extract button.
type ManualInput struct {
	Text string
}

func (ManualInput) mode() Mode { return ModeText }

type Result struct {
	Mode     Mode
	Filename string
	Text     string

	// Preview is set for uploads only.
	Preview   string
	Truncated bool

	Highlighted template.HTML
	Legend      []highlight.LabelColor
	Rows        []analytics.Row
	Summary     analytics.Summary
}

type controller struct {
	recogniser    recogniser.Client
	renderer      *highlight.Renderer
	previewLength int

	// one document goes through the pipeline at a time
	mu *sync.Mutex
}

func newController(client recogniser.Client, palette *highlight.Palette, previewLength int) controller {
	return controller{
		recogniser:    client,
		renderer:      highlight.NewRenderer(palette),
		previewLength: previewLength,
		mu:            &sync.Mutex{},
	}
}

// Process takes one submission through extraction, recognition, highlighting and the entity table.
func (c controller) Process(ctx context.Context, input Input) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &Result{Mode: input.mode()}
	switch in := input.(type) {
	case UploadInput:
		document, err := c.extractUpload(in)
		if err != nil {
			return nil, NewHttpError(http.StatusUnprocessableEntity, msgExtraction, err)
		}
		result.Filename = in.Filename
		result.Text = document
		result.Preview, result.Truncated = text.Preview(document, c.previewLength)
	case ManualInput:
		if in.Text == "" {
			return nil, NewHttpError(http.StatusUnprocessableEntity, msgNoText, extract.ErrEmptyText)
		}
		result.Text = in.Text
	default:
		return nil, fmt.Errorf("unsupported input %T", input)
	}

	entities, err := c.recognise(ctx, result.Text)
	if err != nil {
		return nil, err
	}

	result.Highlighted = c.renderer.Render(result.Text, entities)
	result.Legend = c.renderer.Legend()
	result.Rows = analytics.BuildTable(entities)
	result.Summary = analytics.Summarize(result.Text, result.Rows)
	return result, nil
}

// Export recognises entities in document and returns the entity table as an xlsx workbook.
func (c controller) Export(ctx context.Context, document string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if document == "" {
		return nil, NewHttpError(http.StatusUnprocessableEntity, msgNoText, extract.ErrEmptyText)
	}
	entities, err := c.recognise(ctx, document)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := analytics.WriteXLSX(&buf, analytics.BuildTable(entities)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c controller) extractUpload(in UploadInput) (string, error) {
	kind, err := extract.KindOf(in.ContentType, in.Filename)
	if err != nil {
		return "", err
	}
	document, err := extract.Text(kind, in.Body)
	if err != nil {
		return "", err
	}
	if document == "" {
		return "", fmt.Errorf("%s %q: %w", kind, in.Filename, extract.ErrEmptyText)
	}
	log.Debug().Str("filename", in.Filename).Stringer("kind", kind).Int("bytes", len(document)).Msg("text extracted")
	return document, nil
}

func (c controller) recognise(ctx context.Context, document string) ([]lib.Entity, error) {
	entities, err := c.recogniser.Recognise(ctx, document)
	if err != nil {
		return nil, NewHttpError(http.StatusBadGateway, msgRecognition, err)
	}
	return entities, nil
}
