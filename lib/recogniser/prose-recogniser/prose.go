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

package prose_recogniser

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
)

// New loads the model at modelPath, a directory written by prose's Model.Write, once.
// An empty modelPath uses the model bundled with prose.
func New(modelPath string) (recogniser.Client, error) {
	c := &client{}
	if modelPath == "" {
		log.Warn().Msg("no model_path configured, using the bundled prose model")
		return c, nil
	}

	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	model, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	c.model = model
	log.Info().Str("model", model.Name).Msg("model loaded")
	return c, nil
}

func loadModel(path string) (model *prose.Model, err error) {
	// prose panics on unreadable model files
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("load model %s: %v", path, r)
		}
	}()
	return prose.ModelFromDisk(path), nil
}

type client struct {
	model *prose.Model
}

func (c *client) Recognise(_ context.Context, text string) ([]lib.Entity, error) {
	if text == "" {
		return []lib.Entity{}, nil
	}

	opts := []prose.DocOpt{}
	if c.model != nil {
		opts = append(opts, prose.UsingModel(c.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("prose recogniser: %w", err)
	}

	found := doc.Entities()
	entities := make([]lib.Entity, 0, len(found))
	cursor := 0
	for _, ent := range found {
		start, end, ok := locate(text, cursor, ent.Text)
		if !ok {
			log.Debug().Str("entity", ent.Text).Str("label", ent.Label).Msg("entity not found in document")
			continue
		}
		entities = append(entities, lib.Entity{
			Text:  text[start:end],
			Label: ent.Label,
			Start: start,
			End:   end,
		})
		cursor = end
	}
	return entities, nil
}

// locate finds entity in text at or after from. prose reports entities as their tokens
// joined by single spaces, so the tokens may be separated by any whitespace, or none,
// in the document.
func locate(text string, from int, entity string) (int, int, bool) {
	tokens := strings.Fields(entity)
	if len(tokens) == 0 || from > len(text) {
		return 0, 0, false
	}
	for i, token := range tokens {
		tokens[i] = regexp.QuoteMeta(token)
	}
	re, err := regexp.Compile(strings.Join(tokens, `\s*`))
	if err != nil {
		return 0, 0, false
	}
	match := re.FindStringIndex(text[from:])
	if match == nil {
		return 0, 0, false
	}
	return from + match[0], from + match[1], true
}
