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

package lib

// Entity is one recognised occurrence in a document. Start and End are byte
// offsets into the document text, End exclusive, so text[Start:End] == Text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// InRange reports whether the offsets cover a non-empty span of a text of textLen bytes.
func (e Entity) InRange(textLen int) bool {
	return e.Start >= 0 && e.End <= textLen && e.Start < e.End
}

// Valid reports whether the entity's offsets address text and Text is the
// substring they cover.
func (e Entity) Valid(text string) bool {
	return e.InRange(len(text)) && text[e.Start:e.End] == e.Text
}

// Overlaps reports whether e and other share at least one byte of the document.
func (e Entity) Overlaps(other Entity) bool {
	return e.Start < other.End && other.Start < e.End
}
