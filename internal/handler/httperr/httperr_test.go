//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		mark error
		want int
	}{
		{errs.ErrUnauthenticated, http.StatusUnauthorized},
		{errs.ErrForbidden, http.StatusForbidden},
		{errs.ErrNotFound, http.StatusNotFound},
		{errs.ErrConflict, http.StatusConflict},
		{errs.ErrDomainValidation, http.StatusUnprocessableEntity},
		{errs.ErrDatabaseOperationFailed, http.StatusInternalServerError},
	}
	for _, c := range cases {
		err := errs.Mark(errors.New("boom"), c.mark)
		assert.Equal(t, c.want, httperr.StatusFor(err), c.mark.Error())
	}
	assert.Equal(t, http.StatusInternalServerError, httperr.StatusFor(errors.New("plain")))
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) (int, httperr.Response) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		httperr.Abort(c, err)

		var body httperr.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body
	}

	code, body := run(errs.Mark(errors.New("deal has reached its claim limit"), errs.ErrConflict))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "deal has reached its claim limit", body.Error.Message)

	code, body = run(errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
