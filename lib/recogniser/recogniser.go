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

// Package recogniser defines the entity recognition capability the pipeline depends on.
// Implementations live in the *-recogniser sub packages.
package recogniser

import (
	"context"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
)

// Client recognises entities in a document. Implementations must be deterministic for a fixed
// model, return an empty result for empty text and must not merge or de-duplicate entities.
type Client interface {
	Recognise(ctx context.Context, text string) ([]lib.Entity, error)
}

// Backend names accepted by recogniser.backend.
const (
	Prose = "prose"
	Http  = "http"
	Grpc  = "grpc"
	Regex = "regex"
)

// KeepValid drops entities whose offsets do not address text, logging each one.
// Surviving entities have their Text reset to the exact substring they cover.
func KeepValid(name, text string, entities []lib.Entity) []lib.Entity {
	res := make([]lib.Entity, 0, len(entities))
	for _, entity := range entities {
		if !entity.InRange(len(text)) {
			log.Warn().
				Str("recogniser", name).
				Str("label", entity.Label).
				Int("start", entity.Start).
				Int("end", entity.End).
				Msg("dropping entity with invalid offsets")
			continue
		}
		entity.Text = text[entity.Start:entity.End]
		res = append(res, entity)
	}
	return res
}
