package format

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// htmlRecorder buffers a handler's response so the formatting pass can run
// between template rendering and the wire.
type htmlRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *htmlRecorder) WriteHeader(code int) {
	r.statusCode = code
}

func (r *htmlRecorder) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

func (r *htmlRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Middleware applies the formatter to every text/html response produced by
// the wrapped handler: the page is parsed, kind-marked elements are
// rewritten, and the tree is re-serialized. Other content types pass
// through unchanged, as does HTML that fails to re-serialize.
func Middleware(f *Formatter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &htmlRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			body := rec.body.Bytes()
			if strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
				if out, ok := reformat(f, body); ok {
					body = out
				}
			}

			rec.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(rec.statusCode)
			w.Write(body)
		})
	}
}

func reformat(f *Formatter, body []byte) ([]byte, bool) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, false
	}
	f.Apply(doc)
	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return nil, false
	}
	return out.Bytes(), true
}
