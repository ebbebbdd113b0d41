// Package respond renders router-level failures (unknown route, wrong method, panic) as
// RFC 9457 problem details matching the shape huma uses for operation errors.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aurex-exteriors/site/internal/platform/logging"
)

const (
	contentTypeProblemJSON = "application/problem+json"
	contentTypeProblemCBOR = "application/problem+cbor"
	errorSchemaPath        = "/schemas/ErrorModel.json"
)

// problem mirrors huma.ErrorModel with the $schema link huma adds to its own responses.
type problem struct {
	Schema string              `json:"$schema,omitempty" cbor:"$schema,omitempty"`
	Title  string              `json:"title,omitempty"   cbor:"title,omitempty"`
	Status int                 `json:"status,omitempty"  cbor:"status,omitempty"`
	Detail string              `json:"detail,omitempty"  cbor:"detail,omitempty"`
	Errors []*huma.ErrorDetail `json:"errors,omitempty"  cbor:"errors,omitempty"`
}

// NotFoundHandler answers unknown routes with a 404 problem.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "resource not found")
	}
}

// MethodNotAllowedHandler answers with a 405 problem and an Allow header built from chi's routing tree.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		writeProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

// Recoverer converts panics into 500 problems. If the handler already started writing, the
// partial response is left untouched. http.ErrAbortHandler is re-panicked.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logging.LogError(r.Context(), "panic recovered", fmt.Errorf("%v", rec),
					zap.ByteString("stack", debug.Stack()))
				if rw.wroteHeader {
					return
				}
				writeProblem(rw, r, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	schema := schemaURL(r)
	body := problem{
		Schema: schema,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	contentType := contentTypeProblemJSON
	var (
		payload []byte
		err     error
	)
	if prefersCBOR(r.Header.Get("Accept")) {
		contentType = contentTypeProblemCBOR
		payload, err = cbor.Marshal(body)
	} else {
		payload, err = json.Marshal(body)
	}
	if err != nil {
		logging.LogError(r.Context(), "failed to encode problem", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Link", "<"+schema+">; rel=\"describedBy\"")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logging.LogWarn(r.Context(), "failed to write problem", zap.Error(err))
	}
}

func schemaURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + errorSchemaPath
}

// prefersCBOR ranks Accept entries by q-value, then specificity (problem+ types over base
// types over wildcards). Ties and unknown types fall back to JSON.
func prefersCBOR(accept string) bool {
	bestCBOR, bestJSON := rank{q: -1}, rank{q: -1}
	for entry := range strings.SplitSeq(accept, ",") {
		mediaType, q := parseAcceptEntry(entry)
		if q <= 0 {
			continue
		}
		switch mediaType {
		case "application/problem+cbor":
			bestCBOR = bestCBOR.max(rank{q: q, specificity: 2})
		case "application/cbor":
			bestCBOR = bestCBOR.max(rank{q: q, specificity: 1})
		case "application/problem+json":
			bestJSON = bestJSON.max(rank{q: q, specificity: 2})
		case "application/json":
			bestJSON = bestJSON.max(rank{q: q, specificity: 1})
		case "application/*", "*/*":
			bestJSON = bestJSON.max(rank{q: q, specificity: 0})
		}
	}
	if bestCBOR.q < 0 {
		return false
	}
	return bestJSON.less(bestCBOR)
}

type rank struct {
	q           float64
	specificity int
}

func (a rank) less(b rank) bool {
	if a.q != b.q {
		return a.q < b.q
	}
	return a.specificity < b.specificity
}

func (a rank) max(b rank) rank {
	if a.less(b) {
		return b
	}
	return a
}

func parseAcceptEntry(entry string) (string, float64) {
	parts := strings.Split(entry, ";")
	mediaType := strings.ToLower(strings.TrimSpace(parts[0]))
	q := 1.0
	for _, param := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return mediaType, 0
		}
		q = parsed
	}
	return mediaType, q
}

// allowedMethods probes chi's routing tree for the methods registered on the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}
	var allowed []string
	for _, method := range []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
