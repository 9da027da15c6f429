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
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key (and response header) carrying the request id.
const RequestIDKey = "X-Request-ID"

// JsonLogFormatter writes one json line per request for gin.LoggerWithFormatter.
func JsonLogFormatter(params gin.LogFormatterParams) string {
	logline := map[string]interface{}{
		"time":    params.TimeStamp.UTC().Format("2006-01-02T15:04:05.999"),
		"level":   "info",
		"status":  params.StatusCode,
		"latency": params.Latency.String(),
		"client":  params.ClientIP,
		"method":  params.Method,
		"path":    params.Path,
		"bytes":   params.BodySize,
	}
	if params.StatusCode >= 500 {
		logline["level"] = "error"
	} else if params.StatusCode >= 400 {
		logline["level"] = "warn"
	}
	if params.ErrorMessage != "" {
		logline["error"] = params.ErrorMessage
	}
	if id, ok := params.Keys[RequestIDKey]; ok {
		logline["request_id"] = id
	}
	b, _ := json.Marshal(logline)
	return string(b) + "\n"
}
