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

// Package extract turns uploaded plain-text and PDF documents into a single text string.
package extract

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind is the document format of an input.
type Kind int

const (
	KindPlainText Kind = iota
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "text/plain"
	case KindPDF:
		return "application/pdf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrDecoding is returned when a plain-text document is not valid UTF-8.
	ErrDecoding = errors.New("document is not valid utf-8")
	// ErrUnreadablePDF is returned when a document cannot be parsed as a PDF.
	ErrUnreadablePDF = errors.New("document is not a readable pdf")
	// ErrUnsupportedType is returned for uploads that are neither plain text nor PDF.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyText is returned by callers when extraction succeeded but produced no text.
	ErrEmptyText = errors.New("no text could be extracted")
)

// KindOf resolves the declared content type of an upload, falling back to the
// file extension when the type is missing or generic.
func KindOf(contentType, filename string) (Kind, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch mediaType {
	case "application/pdf":
		return KindPDF, nil
	case "text/plain":
		return KindPlainText, nil
	case "", "application/octet-stream":
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return KindPDF, nil
	case ".txt":
		return KindPlainText, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, filename)
	}
}

// Text reads r once and returns its text. Plain text is returned exactly as decoded.
// PDF pages are joined with "\n" and the result is trimmed of surrounding whitespace.
// r is not closed.
func Text(kind Kind, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s document: %w", kind, err)
	}

	switch kind {
	case KindPlainText:
		return plainText(b)
	case KindPDF:
		return pdfText(b)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
}

func plainText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrDecoding
	}
	return string(b), nil
}
