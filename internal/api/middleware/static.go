package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// StaticFiles serves GET and HEAD requests for files that exist under root.
// "/" serves root/index.html when present. Every other request, including
// requests for directories and missing files, falls through to next.
func StaticFiles(root string) func(http.Handler) http.Handler {
	fileServer := http.FileServer(http.Dir(root))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name := path.Clean("/" + r.URL.Path)
			if name == "/" {
				name = "/index.html"
			}

			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(name)))
			if err != nil || !info.Mode().IsRegular() {
				next.ServeHTTP(w, r)
				return
			}

			fileServer.ServeHTTP(w, r)
		})
	}
}
