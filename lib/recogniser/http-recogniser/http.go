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

package http_recogniser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
)

// NewClient returns a recogniser which posts documents to a model served over http,
// for example a spaCy pipeline behind a small web wrapper.
func NewClient(url string, opts lib.RecogniserOptions) recogniser.Client {
	return &client{
		Url:        url,
		opts:       opts,
		httpClient: http.DefaultClient,
	}
}

type client struct {
	Url        string
	opts       lib.RecogniserOptions
	httpClient lib.HttpClient
}

// Response is the body the model service answers with. start_char and end_char count characters.
type Response struct {
	Entities []ResponseEntity `json:"entities"`
}

type ResponseEntity struct {
	Text      string `json:"text"`
	Label     string `json:"label"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

func (c *client) name() string {
	if c.opts.Name != "" {
		return c.opts.Name
	}
	return recogniser.Http
}

func (c *client) Recognise(ctx context.Context, text string) ([]lib.Entity, error) {
	if text == "" {
		return []lib.Entity{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.UrlWithOptions(c.Url), strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s recogniser: %w", c.name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s recogniser: unexpected status %d: %s", c.name(), resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%s recogniser: decode response: %w", c.name(), err)
	}

	spans := make([]recogniser.CharSpan, len(response.Entities))
	for i, entity := range response.Entities {
		spans[i] = recogniser.CharSpan{Label: entity.Label, Start: entity.StartChar, End: entity.EndChar}
	}
	entities := recogniser.FromCharOffsets(c.name(), text, spans)
	log.Debug().Str("recogniser", c.name()).Int("entities", len(entities)).Msg("recognised")
	return entities, nil
}
