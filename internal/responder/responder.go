// Package responder adds the CORS and ES module content-type headers that a
// browser needs to load a multi-file front-end from a local file server.
package responder

import (
	"net/http"
	"strings"
)

// CORS header values sent on every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

// Content types forced for module sources.
const (
	JavaScriptType = "application/javascript; charset=utf-8"
	JSONType       = "application/json; charset=utf-8"
)

// ContentTypeFor returns the forced content type for urlPath, matching the
// suffix exactly and case-sensitively. ok is false when the underlying
// handler's guess should be kept.
func ContentTypeFor(urlPath string) (ctype string, ok bool) {
	switch {
	case strings.HasSuffix(urlPath, ".js"), strings.HasSuffix(urlPath, ".jsx"):
		return JavaScriptType, true
	case strings.HasSuffix(urlPath, ".json"):
		return JSONType, true
	}
	return "", false
}

// Middleware wraps next so that every response carries the CORS headers and,
// for .js/.jsx/.json paths, the module content type. OPTIONS requests are
// answered with an empty 200 without reaching next.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &headerWriter{ResponseWriter: w, path: r.URL.Path}

		if r.Method == http.MethodOptions {
			hw.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(hw, r)
	})
}

// headerWriter applies the headers right before the status line goes out, so
// they also hold on responses next writes itself (404, redirects).
type headerWriter struct {
	http.ResponseWriter
	path        string
	wroteHeader bool
}

func (hw *headerWriter) finalize() {
	if hw.wroteHeader {
		return
	}
	hw.wroteHeader = true

	h := hw.ResponseWriter.Header()
	h.Set("Access-Control-Allow-Origin", AllowOrigin)
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)

	if ctype, ok := ContentTypeFor(hw.path); ok {
		h.Set("Content-Type", ctype)
	}
}

func (hw *headerWriter) WriteHeader(code int) {
	// 1xx responses are not final; headers are applied with the real status.
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		hw.ResponseWriter.WriteHeader(code)
		return
	}
	hw.finalize()
	hw.ResponseWriter.WriteHeader(code)
}

func (hw *headerWriter) Write(b []byte) (int, error) {
	if !hw.wroteHeader {
		hw.WriteHeader(http.StatusOK)
	}
	return hw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (hw *headerWriter) Unwrap() http.ResponseWriter {
	return hw.ResponseWriter
}
