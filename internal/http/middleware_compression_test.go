package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	payload := `{"ads":[` + strings.Repeat(`{"title":"Plumbing"},`, 200) + `{}]}`
	jsonHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, payload)
	})

	tests := []struct {
		name           string
		acceptEncoding string
		method         string
		level          int
		expectGzip     bool
	}{
		{name: "client accepts gzip", acceptEncoding: "gzip, deflate", method: http.MethodGet, level: 6, expectGzip: true},
		{name: "client does not accept gzip", acceptEncoding: "deflate", method: http.MethodGet, level: 6},
		{name: "no accept-encoding", method: http.MethodGet, level: 6},
		{name: "gzip disabled by q=0", acceptEncoding: "gzip;q=0", method: http.MethodGet, level: 6},
		{name: "out of range level falls back", acceptEncoding: "gzip", method: http.MethodGet, level: 42, expectGzip: true},
		{name: "head request", acceptEncoding: "gzip", method: http.MethodHead, level: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: tt.level})(jsonHandler)
			req := httptest.NewRequest(tt.method, "/api/ads", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if !tt.expectGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				return
			}
			require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
		})
	}
}

func TestCompression_SkipsNoContentAndBinary(t *testing.T) {
	noContent := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	binary := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})

	for name, h := range map[string]http.Handler{"204": noContent, "png": binary} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			Compression(CompressionConfig{Level: 6})(h).ServeHTTP(rec, req)
			assert.Empty(t, rec.Header().Get("Content-Encoding"))
		})
	}
}

func TestAcceptsGzip(t *testing.T) {
	assert.True(t, acceptsGzip("br, gzip"))
	assert.True(t, acceptsGzip("GZIP;q=0.5"))
	assert.False(t, acceptsGzip("x-gzip-like"))
	assert.False(t, acceptsGzip(""))
}

func TestCompression_ImplicitHeaderAndExistingEncoding(t *testing.T) {
	implicit := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	preEncoded := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write([]byte("already-compressed"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Compression(CompressionConfig{Level: 1})(implicit).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	rec = httptest.NewRecorder()
	Compression(CompressionConfig{Level: 1})(preEncoded).ServeHTTP(rec, req)
	assert.Equal(t, "br", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "already-compressed", rec.Body.String())
}

func TestAcceptsGzip_QValues(t *testing.T) {
	assert.False(t, acceptsGzip("gzip; q=0.0"))
	assert.True(t, acceptsGzip("deflate;q=0, gzip;q=0.001"))
	assert.True(t, acceptsGzip("gzip;level=1"))
}
