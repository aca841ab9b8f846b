package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"code":409,"message":"занято"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		WorkerID int64 `json:"workerId"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"workerId":5}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, int64(5), dst.WorkerID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"workerId":5,"extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"workerId":5}{}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestQueryParams(t *testing.T) {
	q := url.Values{
		"workerId": {"5"},
		"dateFrom": {"2024-01-01T12:00:00+03:00"},
		"bad":      {"x"},
	}

	id, err := QueryInt64(q, "workerId")
	require.NoError(t, err)
	assert.Equal(t, int64(5), *id)

	missing, err := QueryInt64(q, "clientId")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt64(q, "bad")
	assert.Error(t, err)

	from, err := QueryTime(q, "dateFrom")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), *from)

	_, err = QueryTime(q, "bad")
	assert.Error(t, err)

	_, err = ParseID("0")
	assert.Error(t, err)
}
