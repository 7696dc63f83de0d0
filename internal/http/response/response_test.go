package response_test

import (
	"encoding/json/v2"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"id": "book-1"}, nil)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	out := decode(t, rec)
	assert.Equal(t, float64(response.EnvelopeVersion), out["v"])
	assert.Equal(t, true, out["success"])
	require.Contains(t, out, "data")
	assert.NotContains(t, out, "error")
}

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NotFound(rec, "book not found", nil)

	assert.Equal(t, 404, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "book not found", out["error"])
	assert.NotContains(t, out, "data")
}

func TestTooManyRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	response.TooManyRequests(rec, "slow down", nil)
	assert.Equal(t, 429, rec.Code)
}

func TestHandleError_DomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, domainerrors.Locked("account temporarily locked"), nil)

	assert.Equal(t, 423, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "account temporarily locked", out["error"])
}

func TestHandleError_UnknownBecomes500(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, assert.AnError, nil)
	assert.Equal(t, 500, rec.Code)
}
