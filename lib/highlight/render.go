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

// Package highlight renders a document as html with its entities marked in their label's color.
package highlight

import (
	"html/template"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"golang.org/x/net/html"
)

const (
	containerOpen = `<div style="overflow-x: auto; padding: 10px; border: 1px solid #ccc; border-radius: 5px; background-color: #f9f9f9; max-width: 100%;">` +
		`<div class="entities" style="line-height: 2.5; direction: ltr; white-space: pre-wrap">`
	containerClose = `</div></div>`

	markOpen  = `<mark class="entity" style="background: `
	markStyle = `; padding: 0.45em 0.6em; margin: 0 0.25em; line-height: 1; border-radius: 0.35em;">`
	badgeOpen = `<span style="font-size: 0.8em; font-weight: bold; line-height: 1; border-radius: 0.35em; vertical-align: middle; margin-left: 0.5rem">`
	markClose = `</span></mark>`
)

type Renderer struct {
	palette *Palette
}

func NewRenderer(palette *Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Legend returns the palette entries, in order, for display next to a rendering.
func (r *Renderer) Legend() []LabelColor {
	return r.palette.Entries()
}

/**
	Render returns text as escaped html, with each accepted entity wrapped in a mark colored by
	its label (DefaultColor when the label is not in the palette), inside a scrollable container.

	Entities are accepted in the order given: one that overlaps an entity accepted before it, or
	whose offsets do not address text, is left unmarked. Removing the container, the marks and
	their label badges gives back html.EscapeString(text).
**/
func (r *Renderer) Render(text string, entities []lib.Entity) template.HTML {
	var b strings.Builder
	b.WriteString(containerOpen)

	position := 0
	for _, entity := range Accept(text, entities) {
		b.WriteString(html.EscapeString(text[position:entity.Start]))

		color, ok := r.palette.Color(entity.Label)
		if !ok {
			color = DefaultColor
		}
		b.WriteString(markOpen)
		b.WriteString(color)
		b.WriteString(markStyle)
		b.WriteString(html.EscapeString(text[entity.Start:entity.End]))
		b.WriteString(badgeOpen)
		b.WriteString(html.EscapeString(entity.Label))
		b.WriteString(markClose)

		position = entity.End
	}
	b.WriteString(html.EscapeString(text[position:]))

	b.WriteString(containerClose)
	return template.HTML(b.String())
}

// Accept applies the first-wins overlap policy and returns the accepted entities in text order.
func Accept(text string, entities []lib.Entity) []lib.Entity {
	accepted := make([]lib.Entity, 0, len(entities))
	for _, entity := range entities {
		if !entity.Valid(text) {
			log.Debug().Str("label", entity.Label).Int("start", entity.Start).Int("end", entity.End).Msg("entity does not address the text, not marked")
			continue
		}
		if overlapsAny(entity, accepted) {
			log.Debug().Str("label", entity.Label).Int("start", entity.Start).Int("end", entity.End).Msg("entity overlaps an earlier one, not marked")
			continue
		}
		accepted = append(accepted, entity)
	}
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func overlapsAny(entity lib.Entity, accepted []lib.Entity) bool {
	for _, other := range accepted {
		if entity.Overlaps(other) {
			return true
		}
	}
	return false
}
