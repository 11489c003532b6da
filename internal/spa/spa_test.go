package spa

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestHandler(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":       {Data: []byte("<div id=\"root\"></div>")},
		"static/js/app.js": {Data: []byte("console.log('app')")},
	}
	h := Handler(fsys)

	tests := []struct {
		path string
		want string
	}{
		{"/", "id=\"root\""},
		{"/article/learn-react", "id=\"root\""},
		{"/articles-list", "id=\"root\""},
		{"/static", "id=\"root\""},
		{"/static/js/app.js", "console.log"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestHandlerWithoutIndex(t *testing.T) {
	w := httptest.NewRecorder()
	Handler(fstest.MapFS{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestEmbeddedShell(t *testing.T) {
	w := httptest.NewRecorder()
	Handler(Dir("")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<div id=\"root\"></div>") {
		t.Errorf("unexpected embedded shell response %d %q", w.Code, w.Body.String())
	}
}
