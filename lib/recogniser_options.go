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

import (
	"net/url"
	"strings"
)

// RecogniserOptions configures a remote recogniser.
type RecogniserOptions struct {
	Name string
	HttpOptions
}

type HttpOptions struct {
	QueryParameters url.Values `json:"queryParameters" mapstructure:"query_parameters"`
}

// UrlWithOptions appends the query parameters to base. Keys are sorted so the
// url is stable; values keep their configured order.
func (o HttpOptions) UrlWithOptions(base string) string {
	if len(o.QueryParameters) == 0 {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + o.QueryParameters.Encode()
}
