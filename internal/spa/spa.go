package spa

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

const indexFile = "index.html"

//go:embed build
var embeddedFiles embed.FS

// Embedded is the minimal shell compiled into the binary.
func Embedded() fs.FS {
	fsys, err := fs.Sub(embeddedFiles, "build")
	if err != nil {
		panic(err)
	}

	return fsys
}

// Dir returns the front end build directory, or the embedded shell when dir
// is empty.
func Dir(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}

	return os.DirFS(dir)
}

// Handler serves static files from fsys. Any path that is not a file gets
// index.html so the client side router can resolve it.
func Handler(fsys fs.FS) http.Handler {
	files := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" || name == indexFile {
			serveIndex(w, r, fsys)

			return
		}

		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			serveIndex(w, r, fsys)

			return
		}

		files.ServeHTTP(w, r)
	})
}

func serveIndex(w http.ResponseWriter, r *http.Request, fsys fs.FS) {
	data, err := fs.ReadFile(fsys, indexFile)
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)

		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
