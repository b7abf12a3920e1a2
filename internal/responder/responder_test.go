package responder

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func assertCORS(t *testing.T, h http.Header) {
	t.Helper()
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/src/main.js", JavaScriptType, true},
		{"/src/main.jsx", JavaScriptType, true},
		{"/src/data/statutes.json", JSONType, true},
		{"/index.html", "", false},
		{"/style.css", "", false},
		// Suffix match is case-sensitive.
		{"/LEGACY.JS", "", false},
		{"/data.JSON", "", false},
		{"/src/main.js.map", "", false},
		{"/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ContentTypeFor(tt.path)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ContentTypeFor(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.js":
			http.NotFound(w, r)
		case "/page.html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<p>hi</p>"))
		default:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte("body"))
		}
	})
	h := Middleware(next)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantType   string
	}{
		{"js", http.MethodGet, "/src/main.js", http.StatusOK, JavaScriptType},
		{"jsx", http.MethodGet, "/src/main.jsx", http.StatusOK, JavaScriptType},
		{"json", http.MethodGet, "/src/data/db.json", http.StatusOK, JSONType},
		{"html untouched", http.MethodGet, "/page.html", http.StatusOK, "text/html; charset=utf-8"},
		{"missing js keeps override", http.MethodGet, "/missing.js", http.StatusNotFound, JavaScriptType},
		{"head json", http.MethodHead, "/x.json", http.StatusOK, JSONType},
		{"query string ignored", http.MethodGet, "/src/utils/fmt.js?v=2", http.StatusOK, JavaScriptType},
		{"escaped dot decoded", http.MethodGet, "/src/utils/fmt%2Ejs", http.StatusOK, JavaScriptType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			assertCORS(t, rec.Header())
		})
	}
}

func TestMiddlewareOptions(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	h := Middleware(next)

	for _, p := range []string{"/", "/does-not-exist.html", "/src/main.jsx", "/src/data/db.json"} {
		t.Run(p, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, p, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("body = %q, want empty", rec.Body.String())
			}
			assertCORS(t, rec.Header())
		})
	}

	if called {
		t.Error("OPTIONS request reached the wrapped handler")
	}
}

func TestMiddlewareImplicitStatus(t *testing.T) {
	// Handler writes a body without calling WriteHeader.
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("export default 1;"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mod.js", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != JavaScriptType {
		t.Errorf("Content-Type = %q, want %q", got, JavaScriptType)
	}
	assertCORS(t, rec.Header())
}
