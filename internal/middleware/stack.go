package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// StackOptions configures the chain every route passes through
type StackOptions struct {
	// AllowedOrigins lists browser origins permitted to call the API.
	// AllowAnyOrigin overrides it, which development builds rely on.
	AllowedOrigins []string
	AllowAnyOrigin bool

	// Instrument wraps each request after panic recovery, e.g. metrics.Middleware.
	Instrument func(http.Handler) http.Handler

	Logger *zap.Logger
}

// Stack returns the router-wide middleware, outermost first
func Stack(opts StackOptions) chi.Middlewares {
	stack := chi.Middlewares{
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		chimiddleware.Compress(5),
		ErrorHandlingMiddleware(opts.Logger),
	}
	if opts.Instrument != nil {
		stack = append(stack, opts.Instrument)
	}
	return append(stack,
		LoggingMiddleware(opts.Logger),
		cors.Handler(corsOptions(opts)),
	)
}

func corsOptions(opts StackOptions) cors.Options {
	origins := opts.AllowedOrigins
	if opts.AllowAnyOrigin {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		// rate-limit headers are read by the web client to back off
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
