package registry

import (
	"context"
	"errors"
	"time"

	"github.com/diwise/entity-registry/internal/pkg/application/subscriptions"
	"github.com/diwise/entity-registry/internal/pkg/infrastructure/database"
	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out registry_mock.go . EntityManager

type EntityQuerier interface {
	QueryEntities(ctx context.Context, filters entities.Filters) ([]entities.Entity, error)
}

type EntityCreator interface {
	AddEntity(ctx context.Context, data entities.FormData) (*entities.Entity, error)
}

type EntityUpdater interface {
	UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (*entities.Entity, error)
}

type EntityDeleter interface {
	DeleteEntity(ctx context.Context, id int64) (entities.DeleteResult, error)
}

type EntityManager interface {
	EntityQuerier
	EntityCreator
	EntityUpdater
	EntityDeleter

	Start() error
	Stop() error
}

var tracer = otel.Tracer("entity-registry/registry")

type registryApp struct {
	store    database.Store
	notifier subscriptions.Notifier
	enums    entities.Enumerations
	metrics  *metrics
}

// New creates an EntityManager on top of a store. The notifier is optional.
func New(store database.Store, notifier subscriptions.Notifier, cfg *Config, reg prometheus.Registerer) EntityManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &registryApp{
		store:    store,
		notifier: notifier,
		enums:    cfg.Enumerations,
		metrics:  newMetrics(reg),
	}
}

func (app *registryApp) QueryEntities(ctx context.Context, filters entities.Filters) (result []entities.Entity, err error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "query-entities")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result, err = app.store.QueryEntities(ctx, filters)
	if err != nil {
		app.metrics.record("query", outcomeFailure, start)
		return nil, err
	}

	app.metrics.record("query", outcomeSuccess, start)
	return result, nil
}

func (app *registryApp) AddEntity(ctx context.Context, data entities.FormData) (e *entities.Entity, err error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "add-entity",
		trace.WithAttributes(attribute.String("entity.type", data.Type)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	app.warnAboutUnknownValues(ctx, &data.Type, &data.EyeColor)

	e, err = app.store.CreateEntity(ctx, data)
	if err != nil {
		app.metrics.record("add", outcomeFailure, start)
		return nil, err
	}

	app.metrics.record("add", outcomeSuccess, start)

	if app.notifier != nil {
		app.notifier.EntityCreated(ctx, *e)
	}

	return e, nil
}

func (app *registryApp) UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (e *entities.Entity, err error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "update-entity",
		trace.WithAttributes(attribute.Int64("entity.id", id)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	app.warnAboutUnknownValues(ctx, fields.Type, fields.EyeColor)

	e, err = app.store.UpdateEntity(ctx, id, fields)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			app.metrics.record("update", outcomeNotFound, start)
		} else {
			app.metrics.record("update", outcomeFailure, start)
		}
		return nil, err
	}

	app.metrics.record("update", outcomeSuccess, start)

	if app.notifier != nil {
		app.notifier.EntityUpdated(ctx, *e)
	}

	return e, nil
}

func (app *registryApp) DeleteEntity(ctx context.Context, id int64) (result entities.DeleteResult, err error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.Int64("entity.id", id)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	deleted, err := app.store.DeleteEntity(ctx, id)
	if err != nil {
		app.metrics.record("delete", outcomeFailure, start)
		return entities.DeleteResult{}, err
	}

	if !deleted {
		app.metrics.record("delete", outcomeNotFound, start)
		return entities.NewDeleteResult(false), nil
	}

	app.metrics.record("delete", outcomeSuccess, start)

	if app.notifier != nil {
		app.notifier.EntityDeleted(ctx, entities.Entity{ID: id})
	}

	return entities.NewDeleteResult(true), nil
}

// warnAboutUnknownValues logs values outside of the configured enumerations.
// The values are still stored.
func (app *registryApp) warnAboutUnknownValues(ctx context.Context, entityType, eyeColor *string) {
	log := logging.GetFromContext(ctx)

	if entityType != nil && !app.enums.IsKnownType(*entityType) {
		log.Warn("entity type is not one of the known types", "type", *entityType)
	}

	if eyeColor != nil && !app.enums.IsKnownEyeColor(*eyeColor) {
		log.Warn("eye color is not one of the known eye colors", "eye_color", *eyeColor)
	}
}

func (app *registryApp) Start() error {
	if app.notifier != nil {
		return app.notifier.Start()
	}

	return nil
}

func (app *registryApp) Stop() error {
	if app.notifier != nil {
		return app.notifier.Stop()
	}

	return nil
}
