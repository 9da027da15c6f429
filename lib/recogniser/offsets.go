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

package recogniser

import (
	"unicode/utf8"

	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/text"
)

// CharSpan is an entity as reported by a remote model: offsets count characters (code points),
// not bytes.
type CharSpan struct {
	Label string
	Start int
	End   int
}

// FromCharOffsets converts remote spans to entities addressing doc by byte offset, keeping the
// remote order and dropping spans that fall outside doc.
func FromCharOffsets(name, doc string, spans []CharSpan) []lib.Entity {
	offsets := text.NewRuneOffsets(doc)
	entities := make([]lib.Entity, len(spans))
	for i, span := range spans {
		entities[i] = lib.Entity{
			Label: span.Label,
			Start: offsets.Byte(span.Start),
			End:   offsets.Byte(span.End),
		}
	}
	return KeepValid(name, doc, entities)
}

// ToCharOffsets is the inverse of FromCharOffsets, for serving entities to callers that count
// characters.
func ToCharOffsets(doc string, entities []lib.Entity) []CharSpan {
	spans := make([]CharSpan, 0, len(entities))
	start, runes := 0, 0
	for _, entity := range entities {
		// count on from the previous entity unless this one starts before it
		if entity.Start < start {
			start, runes = 0, 0
		}
		runes += utf8.RuneCountInString(doc[start:entity.Start])
		start = entity.Start
		spans = append(spans, CharSpan{
			Label: entity.Label,
			Start: runes,
			End:   runes + utf8.RuneCountInString(doc[entity.Start:entity.End]),
		})
	}
	return spans
}
