package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "", FromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", FromContext(ctx))

	ctx = context.WithValue(context.Background(), RequestIDKey, 42)
	assert.Equal(t, "", FromContext(ctx), "non-string values are ignored")
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantSame   bool
		wantUUIDv4 bool
	}{
		{name: "propagates existing id", header: "client-abc-123", wantSame: true},
		{name: "generates when missing", header: "", wantUUIDv4: true},
		{name: "replaces overlong id", header: strings.Repeat("a", maxRequestIDLength+1), wantUUIDv4: true},
		{name: "replaces id with spaces", header: "bad id", wantUUIDv4: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/crypto-data", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
			if tt.wantSame {
				assert.Equal(t, tt.header, seen)
			}
			if tt.wantUUIDv4 {
				parsed, err := uuid.Parse(seen)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(4), parsed.Version())
			}
		})
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	ids := make(map[string]struct{})
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[FromContext(r.Context())] = struct{}{}
	}))

	for i := 0; i < 20; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Len(t, ids, 20)
}
