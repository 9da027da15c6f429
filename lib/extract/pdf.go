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

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// document is the view of a parsed PDF the extractor needs. Pages are numbered from 1.
type document interface {
	NumPage() int
	PageText(num int) (string, error)
}

type pdfDocument struct {
	reader *pdf.Reader
}

func (d pdfDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d pdfDocument) PageText(num int) (string, error) {
	page := d.reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	// GetPlainText starts a new line before every text row, including the first
	return strings.TrimPrefix(text, "\n"), nil
}

func openPDF(b []byte) (doc document, err error) {
	// the parser panics on some malformed input instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}
	// NumPage walks the page tree, which is where a broken trailer shows up.
	_ = reader.NumPage()
	return pdfDocument{reader: reader}, nil
}

func pdfText(b []byte) (string, error) {
	doc, err := openPDF(b)
	if err != nil {
		return "", err
	}
	return joinPages(doc)
}

// joinPages concatenates every page's text, in order, with newline separators.
// A page whose text cannot be extracted contributes an empty string.
func joinPages(doc document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	n := doc.NumPage()
	pages := make([]string, n)
	for i := 1; i <= n; i++ {
		pageText, err := doc.PageText(i)
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("no text extracted from page")
			continue
		}
		pages[i-1] = pageText
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
