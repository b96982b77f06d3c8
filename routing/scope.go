package routing

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-graph/framework/container"
)

// ErrNoScope is returned by Resolve for requests that did not pass through
// the Scoped middleware.
var ErrNoScope = errors.New("routing: request has no container scope")

type scopeCtxKey struct{}

type requestScope struct {
	graph       *container.Graph
	id          string
	correlation string
}

// Scoped opens a container scope per request.
//
// Every request gets a fresh scope id from container.NewScopeID(), so two
// requests never share scoped instances even when clients send the same
// header. The header named header, else chi's request id, is kept as the
// correlation id for logs. The scoped instances of keys are evicted once the
// handler returns, even if it panics.
//
//	r.Group(func(api *routing.Router) {
//	    api.Middleware(routing.Scoped(g, log, "X-Request-ID", container.KeyOf[*Cart]()))
//	    api.Get("/cart", func(w http.ResponseWriter, req *http.Request) {
//	        cart, err := routing.Resolve[*Cart](req)
//	        ...
//	    })
//	})
func Scoped(g *container.Graph, log *zap.Logger, header string, keys ...container.Key) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := requestScope{
				graph:       g,
				id:          container.NewScopeID(),
				correlation: correlationIDFor(r, header),
			}

			defer func() {
				for _, key := range keys {
					if err := g.RemoveScoped(key, s.id); err != nil {
						log.Warn("routing: scope eviction failed",
							zap.String("scope", s.id),
							zap.String("correlation_id", s.correlation),
							zap.Stringer("key", key),
							zap.Error(err),
						)
					}
				}
			}()

			ctx := context.WithValue(r.Context(), scopeCtxKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func correlationIDFor(r *http.Request, header string) string {
	if header != "" {
		if id := r.Header.Get(header); id != "" {
			return id
		}
	}
	return middleware.GetReqID(r.Context())
}

// ScopeID returns the container scope id of the request.
func ScopeID(r *http.Request) (string, bool) {
	s, ok := r.Context().Value(scopeCtxKey{}).(requestScope)
	return s.id, ok
}

// CorrelationID returns the client-facing id of the request: the configured
// header, else chi's request id. It may be empty and is not unique.
func CorrelationID(r *http.Request) string {
	s, _ := r.Context().Value(scopeCtxKey{}).(requestScope)
	return s.correlation
}

// Resolve returns the request-scoped instance of T.
func Resolve[T any](r *http.Request) (T, error) {
	return ResolveWith[T](r, nil)
}

// ResolveWith returns the request-scoped instance of T, passing arg to the
// factory if the request has no instance yet.
func ResolveWith[T any](r *http.Request, arg any) (T, error) {
	s, ok := r.Context().Value(scopeCtxKey{}).(requestScope)
	if !ok {
		var zero T
		return zero, ErrNoScope
	}
	return container.ResolveScopedWith[T](s.graph, arg, s.id)
}
