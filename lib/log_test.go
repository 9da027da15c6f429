package lib

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonLogFormatter(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		errorMsg  string
		keys      map[string]interface{}
		wantLevel string
	}{
		{name: "ok", status: 200, wantLevel: "info", keys: map[string]interface{}{RequestIDKey: "abc"}},
		{name: "user error", status: 422, errorMsg: "no text could be extracted", wantLevel: "warn"},
		{name: "model down", status: 502, errorMsg: "connection refused", wantLevel: "error"},
	}
	for _, tt := range tests {
		line := JsonLogFormatter(gin.LogFormatterParams{
			TimeStamp:    time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC),
			StatusCode:   tt.status,
			Latency:      time.Millisecond,
			ClientIP:     "127.0.0.1",
			Method:       "POST",
			Path:         "/upload",
			ErrorMessage: tt.errorMsg,
			BodySize:     42,
			Keys:         tt.keys,
		})
		assert.Equal(t, byte('\n'), line[len(line)-1], tt.name)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &got), tt.name)
		assert.Equal(t, tt.wantLevel, got["level"], tt.name)
		assert.Equal(t, float64(tt.status), got["status"], tt.name)
		assert.Equal(t, "/upload", got["path"], tt.name)
		if tt.errorMsg != "" {
			assert.Equal(t, tt.errorMsg, got["error"], tt.name)
		} else {
			assert.NotContains(t, got, "error", tt.name)
		}
		if id, ok := tt.keys[RequestIDKey]; ok {
			assert.Equal(t, id, got["request_id"], tt.name)
		}
	}
}
