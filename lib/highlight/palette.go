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

package highlight

// DefaultColor is the background of entities whose label has no color.
const DefaultColor = "#ddd"

// LabelColor is one legend entry.
type LabelColor struct {
	Label string
	Color string
}

// Palette maps labels to display colors. It is built once and never modified,
// so one value can be shared by every request.
type Palette struct {
	entries []LabelColor
	colors  map[string]string
}

// NewPalette builds a palette from entries. A repeated label keeps its first color.
func NewPalette(entries ...LabelColor) *Palette {
	p := &Palette{
		entries: make([]LabelColor, 0, len(entries)),
		colors:  make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		if _, ok := p.colors[entry.Label]; ok {
			continue
		}
		p.colors[entry.Label] = entry.Color
		p.entries = append(p.entries, entry)
	}
	return p
}

// DefaultPalette is the legal label set.
func DefaultPalette() *Palette {
	return NewPalette(
		LabelColor{"ORG", "#FF5733"},
		LabelColor{"LAWYER", "#6A0DAD"},
		LabelColor{"DATE", "#FFD700"},
		LabelColor{"CASE_NUMBER", "#0000FF"},
		LabelColor{"JUDGE", "#32CD32"},
		LabelColor{"STATUTE", "#FFA07A"},
		LabelColor{"COURT", "#20B2AA"},
		LabelColor{"RESPONDENT", "#800000"},
		LabelColor{"PRECEDENT", "#FF1493"},
		LabelColor{"WITNESS", "#708090"},
		LabelColor{"OTHER_PERSON", "#8B4513"},
		LabelColor{"GPE", "#4682B4"},
		LabelColor{"PROVISION", "#9400D3"},
		LabelColor{"PETITIONER", "#556B2F"},
	)
}

// Color returns the color of label and whether the label is mapped.
func (p *Palette) Color(label string) (string, bool) {
	color, ok := p.colors[label]
	return color, ok
}

// Has reports whether label is part of the palette.
func (p *Palette) Has(label string) bool {
	_, ok := p.colors[label]
	return ok
}

// Entries returns a copy of the palette in definition order.
func (p *Palette) Entries() []LabelColor {
	return append([]LabelColor(nil), p.entries...)
}
