package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_Defaults(t *testing.T) {
	rw := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.Equal(t, 0, rw.BytesWritten())
	assert.Nil(t, rw.Body())
}

func TestResponseWriter_WriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	rw.WriteHeader(http.StatusMethodNotAllowed)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusMethodNotAllowed, rw.StatusCode())
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	_, _ = rw.Write([]byte(`{"message":`))
	_, _ = rw.Write([]byte(`"ok"}`))

	assert.Equal(t, http.StatusOK, rw.StatusCode(), "implicit 200")
	assert.Equal(t, 16, rw.BytesWritten())
	assert.Equal(t, `{"message":"ok"}`, rec.Body.String())
}

func TestWrapCapturing(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := WrapCapturing(rec)

	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write([]byte("hello "))
	_, _ = rw.Write([]byte("world"))

	assert.Equal(t, "hello world", string(rw.Body()))
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Same(t, rec, Wrap(rec).Unwrap())
}
