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

package text

import (
	"github.com/blevesearch/segment"
)

// Token is a word found by Tokenize. Offset is the byte offset of the word in the source text.
type Token struct {
	Text   string
	Offset int
}

/**
	Tokenize splits text into words using unicode word segmentation and calls onToken for each one.
	Whitespace and punctuation segments are skipped, so "s. 302 IPC" yields "s", "302", "IPC".
	Iteration stops at the first error returned by onToken.
**/
func Tokenize(text string, onToken func(Token) error) error {
	segmenter := segment.NewWordSegmenterDirect([]byte(text))
	position := 0
	for segmenter.Segment() {
		segmentBytes := segmenter.Bytes()
		if segmenter.Type() != segment.None {
			if err := onToken(Token{Text: string(segmentBytes), Offset: position}); err != nil {
				return err
			}
		}
		position += len(segmentBytes)
	}
	return segmenter.Err()
}

// CountWords returns the number of words Tokenize would produce.
func CountWords(text string) int {
	var n int
	_ = Tokenize(text, func(Token) error {
		n++
		return nil
	})
	return n
}
