package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var env Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestValidationError_IsBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"type": "required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "required", env.Error.Details["type"])
}

func TestHandleError_BusinessDenialIsUnprocessable(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, attendance.ErrPunchOutOfOrder)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "PUNCH_OUT_OF_ORDER", decode(t, rec).Error.Code)
}

func TestHandleError_PartialReprocess(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &hours.PartialReprocessError{Updated: 4, Err: errors.New("db down")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "REPROCESS_INCOMPLETE", env.Error.Code)
	assert.Equal(t, "Reprocess stopped before finishing", env.Error.Message)
	assert.EqualValues(t, 4, env.Error.Details["updated"])
}

func TestWriteJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ENCODING_ERROR", decode(t, rec).Error.Code)
}
