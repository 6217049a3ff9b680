package webhook

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	jsonContentType = "application/json; charset=utf-8"
	// Same layout as a javascript Date.toISOString().
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// encodeJSON encodes a response body. The same bytes are written and stored
// for replay. encoding/json writes map keys sorted, replayed bodies are
// re-encoded the same way.
func encodeJSON(body interface{}) []byte {
	encoded, err := json.Marshal(body)
	if err != nil {
		return []byte(`{"error":"Internal server error","code":"INTERNAL_ERROR"}`)
	}
	return encoded
}

func writeRaw(c *gin.Context, status int, body []byte) {
	c.Data(status, jsonContentType, body)
}

// errorResponse is the body sent for e. 401 only carries the message.
func errorResponse(e *webhookError, now time.Time) gin.H {
	body := gin.H{"error": e.message}
	if e.status == 401 {
		return body
	}
	body["timestamp"] = now.UTC().Format(timestampLayout)
	if e.code != "" {
		body["code"] = e.code
	}
	if len(e.missing) > 0 {
		body["missing_fields"] = e.missing
	}
	return body
}

// errorLogBody is what gets stored in the webhook log for e, it carries the
// cause and the request so that a failed call can be replayed by hand.
func errorLogBody(e *webhookError, request []byte) gin.H {
	body := gin.H{"error": e.Error()}
	if e.code != "" {
		body["code"] = e.code
	}
	if request != nil {
		body["body"] = json.RawMessage(request)
	}
	return body
}

func methodNotAllowed(c *gin.Context) {
	writeRaw(c, 405, encodeJSON(gin.H{
		"error":     "Method not allowed",
		"code":      CodeMethodNotAllowed,
		"timestamp": time.Now().UTC().Format(timestampLayout),
	}))
}
