//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"local-deals/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
)

// AssertSuccessResponse decodes 2xx bodies into target when target is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "response: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the {"error":{"message"}}
// body contains wantMessage. An empty wantMessage only checks the shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, wantMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response: %s", w.Body.String()) {
		return
	}
	assert.NotEmpty(t, body.Error.Message, "error responses always carry a message")
	if wantMessage != "" {
		assert.Contains(t, body.Error.Message, wantMessage)
	}
}
