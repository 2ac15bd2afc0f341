package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/diwise/entity-registry/internal/pkg/application/registry"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.opentelemetry.io/otel/trace"
)

// RegisterHandlers mounts the GraphQL endpoint for the entity registry on /graphql
func RegisterHandlers(ctx context.Context, r chi.Router, app registry.EntityManager) error {

	s, err := gql.ParseSchema(schema, &resolver{app: app})
	if err != nil {
		return fmt.Errorf("failed to parse graphql schema: %w", err)
	}

	r.With(
		Logger(logging.GetFromContext(ctx)),
		RequiredContentTypes([]string{"application/json"}),
	).Post("/graphql", (&relay.Handler{Schema: s}).ServeHTTP)

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequiredContentTypes rejects requests whose body is not in one of the accepted
// media types. The rejection is written as a graphql error response.
func RequiredContentTypes(accepted []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")

			if contentType == "" || slices.ContainsFunc(accepted, func(t string) bool {
				return strings.HasPrefix(contentType, t)
			}) {
				next.ServeHTTP(w, r)
				return
			}

			body, _ := json.Marshal(map[string]any{
				"errors": []map[string]string{{"message": "unsupported media type " + contentType}},
			})

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			w.Write(body)
		})
	}
}
