package graphql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/entity-registry/internal/pkg/application/registry"
	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	gql "github.com/graph-gophers/graphql-go"
)

type resolver struct {
	app registry.EntityManager
}

type entityFiltersInput struct {
	Types     *[]string
	EyeColors *[]string
	DateFrom  *string
	DateTo    *string
}

func (in *entityFiltersInput) toFilters() entities.Filters {
	f := entities.Filters{}
	if in == nil {
		return f
	}

	if in.Types != nil {
		f.Types = *in.Types
	}
	if in.EyeColors != nil {
		f.EyeColors = *in.EyeColors
	}
	if in.DateFrom != nil {
		f.DateFrom = *in.DateFrom
	}
	if in.DateTo != nil {
		f.DateTo = *in.DateTo
	}

	return f
}

var errReadFailed = errors.New("failed to load entities")
var errWriteFailed = errors.New("failed to store entity")

func (r *resolver) Entities(ctx context.Context, args struct{ Filters *entityFiltersInput }) ([]*entityResolver, error) {
	result, err := r.app.QueryEntities(ctx, args.Filters.toFilters())
	if err != nil {
		if errors.Is(err, entities.ErrBadRequest) {
			return nil, err
		}

		logging.GetFromContext(ctx).Error("query entities failed", "err", err.Error())
		return nil, errReadFailed
	}

	resolvers := make([]*entityResolver, 0, len(result))
	for _, e := range result {
		resolvers = append(resolvers, &entityResolver{e: e})
	}

	return resolvers, nil
}

type addEntityArgs struct {
	Type        string
	DateOfBirth string
	EyeColor    string
}

func (r *resolver) AddEntity(ctx context.Context, args addEntityArgs) (*entityResolver, error) {
	e, err := r.app.AddEntity(ctx, entities.FormData{
		Type:        args.Type,
		DateOfBirth: args.DateOfBirth,
		EyeColor:    args.EyeColor,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("add entity failed", "err", err.Error())
		return nil, errWriteFailed
	}

	return &entityResolver{e: *e}, nil
}

type updateEntityArgs struct {
	ID          gql.ID
	Type        *string
	DateOfBirth *string
	EyeColor    *string
}

func (r *resolver) UpdateEntity(ctx context.Context, args updateEntityArgs) (*entityResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	e, err := r.app.UpdateEntity(ctx, id, entities.Fields{
		Type:        args.Type,
		DateOfBirth: args.DateOfBirth,
		EyeColor:    args.EyeColor,
	})
	if errors.Is(err, entities.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logging.GetFromContext(ctx).Error("update entity failed", "id", id, "err", err.Error())
		return nil, errWriteFailed
	}

	return &entityResolver{e: *e}, nil
}

func (r *resolver) DeleteEntity(ctx context.Context, args struct{ ID gql.ID }) (*deleteResultResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}

	result, err := r.app.DeleteEntity(ctx, id)
	if err != nil {
		logging.GetFromContext(ctx).Error("delete entity failed", "id", id, "err", err.Error())
		return nil, errWriteFailed
	}

	return &deleteResultResolver{result: result}, nil
}

func parseID(id gql.ID) (int64, error) {
	i, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q", string(id))
	}
	return i, nil
}

type entityResolver struct {
	e entities.Entity
}

func (er *entityResolver) ID() gql.ID {
	return gql.ID(strconv.FormatInt(er.e.ID, 10))
}

func (er *entityResolver) Type() string {
	return er.e.Type
}

func (er *entityResolver) DateOfBirth() string {
	return er.e.DateOfBirth
}

func (er *entityResolver) EyeColor() string {
	return er.e.EyeColor
}

func (er *entityResolver) CreatedAt() *string {
	return formatTime(er.e.CreatedAt)
}

func (er *entityResolver) UpdatedAt() *string {
	return formatTime(er.e.UpdatedAt)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

type deleteResultResolver struct {
	result entities.DeleteResult
}

func (dr *deleteResultResolver) Success() bool {
	return dr.result.Success
}

func (dr *deleteResultResolver) Message() string {
	return dr.result.Message
}
