package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/dataverse-client/internal/pkg/application/batcher"
	"github.com/diwise/dataverse-client/internal/pkg/presentation/api/auth"
	"github.com/diwise/dataverse-client/internal/pkg/presentation/api/problems"
	dverrors "github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("dataverse-gateway/api")

const (
	TraceAttributeEntitySet string = "entity-set"
	TraceAttributeEntityID  string = "entity-id"
)

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, b batcher.Batcher) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Route("/api/v0", func(r chi.Router) {
		r.Use(
			Logger(logging.GetFromContext(ctx)),
			RequiredContentTypes([]string{"application/json"}),
		)

		r.Post("/entities/{entitySet}", NewCreateEntityHandler(b, authenticator))
		r.Patch("/entities/{entitySet}/{entityId}", NewUpsertEntityHandler(b, authenticator))
		r.Delete("/entities/{entitySet}/{entityId}", NewDeleteEntityHandler(b, authenticator))

		r.Post("/flush", NewFlushHandler(b, authenticator))
	})

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

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}

func NewCreateEntityHandler(b batcher.Batcher, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entitySet := chi.URLParam(r, "entitySet")

		ctx, span := tracer.Start(r.Context(), "create-entity",
			trace.WithAttributes(attribute.String(TraceAttributeEntitySet, entitySet)),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		if err = authenticator.CheckAccess(ctx, r, entitySet); err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error())
			return
		}

		body, err := readEntity(r)
		if err != nil {
			problems.ReportNewBadRequestData(w, err.Error())
			return
		}

		err = b.Create(ctx, entitySet, body)
		if err != nil {
			reportBatcherError(ctx, w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func NewUpsertEntityHandler(b batcher.Batcher, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entitySet := chi.URLParam(r, "entitySet")
		entityID := chi.URLParam(r, "entityId")

		ctx, span := tracer.Start(r.Context(), "upsert-entity",
			trace.WithAttributes(
				attribute.String(TraceAttributeEntitySet, entitySet),
				attribute.String(TraceAttributeEntityID, entityID),
			),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		if err = authenticator.CheckAccess(ctx, r, entitySet); err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error())
			return
		}

		id, err := uuid.Parse(entityID)
		if err != nil {
			problems.ReportNewBadRequestData(w, "entity id must be a uuid")
			return
		}

		body, err := readEntity(r)
		if err != nil {
			problems.ReportNewBadRequestData(w, err.Error())
			return
		}

		err = b.Upsert(ctx, entitySet, id, body)
		if err != nil {
			reportBatcherError(ctx, w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func NewDeleteEntityHandler(b batcher.Batcher, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entitySet := chi.URLParam(r, "entitySet")
		entityID := chi.URLParam(r, "entityId")

		ctx, span := tracer.Start(r.Context(), "delete-entity",
			trace.WithAttributes(
				attribute.String(TraceAttributeEntitySet, entitySet),
				attribute.String(TraceAttributeEntityID, entityID),
			),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		if err = authenticator.CheckAccess(ctx, r, entitySet); err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error())
			return
		}

		id, err := uuid.Parse(entityID)
		if err != nil {
			problems.ReportNewBadRequestData(w, "entity id must be a uuid")
			return
		}

		err = b.Delete(ctx, entitySet, id)
		if err != nil {
			reportBatcherError(ctx, w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

type flushResult struct {
	Count int `json:"count"`
}

func NewFlushHandler(b batcher.Batcher, authenticator auth.Enticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "flush")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		if err = authenticator.CheckAccess(ctx, r, ""); err != nil {
			problems.ReportUnauthorizedRequest(w, err.Error())
			return
		}

		count, err := b.Flush(ctx)
		if err != nil {
			reportBatcherError(ctx, w, err)
			return
		}

		body, _ := json.Marshal(flushResult{Count: count})

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

const maxEntitySize int64 = 1024 * 1024

func readEntity(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEntitySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %s", err.Error())
	}

	if int64(len(body)) > maxEntitySize {
		return nil, fmt.Errorf("request body is larger than %d bytes", maxEntitySize)
	}

	if !json.Valid(body) {
		return nil, errors.New("request body is not valid json")
	}

	return body, nil
}

func reportBatcherError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, batcher.ErrEntitySetNotAllowed):
		problems.ReportForbiddenEntitySet(w, err.Error())
	case errors.Is(err, batcher.ErrNotStarted):
		problems.ReportServiceUnavailable(w, err.Error())
	case errors.Is(err, dverrors.ErrSerialization):
		problems.ReportNewBadRequestData(w, err.Error())
	case errors.Is(err, dverrors.ErrInternal):
		logging.GetFromContext(ctx).Error("internal error", "err", err.Error())
		problems.ReportNewInternalError(w, err.Error())
	default:
		logging.GetFromContext(ctx).Error("failed to execute batch", "err", err.Error())
		problems.ReportUpstreamError(w, err.Error())
	}
}
