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

// Package analytics turns recognised entities into the tabular view shown under a rendering.
package analytics

import (
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Row is one line of the entity table.
type Row struct {
	Entity string `json:"entity"`
	Type   string `json:"type"`
}

// BuildTable returns one row per entity in recognition order. Nothing is sorted, grouped or removed.
func BuildTable(entities []lib.Entity) []Row {
	rows := make([]Row, 0, len(entities))
	for _, entity := range entities {
		rows = append(rows, Row{Entity: entity.Text, Type: entity.Label})
	}
	return rows
}

type LabelCount struct {
	Label string
	Count int
}

type Summary struct {
	Words    int
	Entities int
	// Labels in the order each label first appears in the table.
	Labels []LabelCount
}

func Summarize(document string, rows []Row) Summary {
	summary := Summary{
		Words:    text.CountWords(document),
		Entities: len(rows),
		Labels:   []LabelCount{},
	}
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Type]
		if !ok {
			i = len(summary.Labels)
			index[row.Type] = i
			summary.Labels = append(summary.Labels, LabelCount{Label: row.Type})
		}
		summary.Labels[i].Count++
	}
	return summary
}

// String formats the totals for display, e.g. "1,204 words, 12 entities".
func (s Summary) String() string {
	return printer.Sprintf("%d words, %d entities", s.Words, s.Entities)
}

func (c LabelCount) String() string {
	return printer.Sprintf("%s: %d", c.Label, c.Count)
}
