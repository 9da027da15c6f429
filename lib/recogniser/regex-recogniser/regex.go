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

package regex_recogniser

import (
	"context"
	"fmt"
	"io/ioutil"
	"regexp"
	"sort"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	"gopkg.in/yaml.v2"
)

type pattern struct {
	label string
	re    *regexp.Regexp
}

type client struct {
	patterns []pattern
}

// Load reads a yml file mapping labels to lists of regular expressions, e.g.
//
//	CASE_NUMBER:
//	  - '\b(?:Civil|Criminal) Appeal No\. \d+ of \d{4}\b'
//
// Labels keep the order they have in the file.
func Load(path string) (recogniser.Client, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not read patterns file")
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Str("path", path).Int("patterns", len(c.(*client).patterns)).Msg("patterns loaded")
	return c, nil
}

// Parse compiles the yml document described in Load.
func Parse(b []byte) (recogniser.Client, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	var patterns []pattern
	for _, item := range doc {
		label, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("label %v is not a string", item.Key)
		}
		expressions, ok := item.Value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: expected a list of patterns", label)
		}
		for _, expression := range expressions {
			str, ok := expression.(string)
			if !ok {
				return nil, fmt.Errorf("%s: pattern %v is not a string", label, expression)
			}
			re, err := regexp.Compile(str)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", label, err)
			}
			patterns = append(patterns, pattern{label: label, re: re})
		}
	}
	return &client{patterns: patterns}, nil
}

// Recognise reports every non-empty match of every pattern, ordered by start offset.
// Matches starting at the same offset keep the order of their patterns in the file.
func (c *client) Recognise(_ context.Context, text string) ([]lib.Entity, error) {
	entities := []lib.Entity{}
	if text == "" {
		return entities, nil
	}

	for _, p := range c.patterns {
		for _, match := range p.re.FindAllStringIndex(text, -1) {
			if match[0] == match[1] {
				continue
			}
			entities = append(entities, lib.Entity{
				Text:  text[match[0]:match[1]],
				Label: p.label,
				Start: match[0],
				End:   match[1],
			})
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities, nil
}
