package database

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/matryer/is"
)

func TestQueryWithoutFiltersReturnsAllEntitiesOrderedByID(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db,
		entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"},
		entities.FormData{Type: "cat", DateOfBirth: "01/01/2020", EyeColor: "green"},
		entities.FormData{Type: "person", DateOfBirth: "1985-11-02", EyeColor: "brown"},
	)

	result, err := db.QueryEntities(ctx, entities.Filters{})
	is.NoErr(err)

	is.Equal(len(result), 3) // should return every stored entity
	is.True(result[0].ID < result[1].ID)
	is.True(result[1].ID < result[2].ID)
	is.Equal(result[1].Type, "cat")
}

func TestQueryByTypesOnlyReturnsMatchingTypes(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db,
		entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"},
		entities.FormData{Type: "cat", DateOfBirth: "2020-01-01", EyeColor: "green"},
		entities.FormData{Type: "person", DateOfBirth: "1985-11-02", EyeColor: "brown"},
		entities.FormData{Type: "dog", DateOfBirth: "2021-03-04", EyeColor: "brown"},
	)

	result, err := db.QueryEntities(ctx, entities.Filters{Types: []string{"dog", "person"}})
	is.NoErr(err)

	is.Equal(len(result), 3)
	for _, e := range result {
		is.True(e.Type == "dog" || e.Type == "person") // type should be one of the requested
	}
}

func TestQueryCombinesDimensionsWithAnd(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db,
		entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"},
		entities.FormData{Type: "dog", DateOfBirth: "2021-03-04", EyeColor: "brown"},
		entities.FormData{Type: "cat", DateOfBirth: "2021-03-04", EyeColor: "brown"},
	)

	result, err := db.QueryEntities(ctx, entities.Filters{
		Types:     []string{"dog"},
		EyeColors: []string{"brown"},
		DateFrom:  "2020-01-01",
	})
	is.NoErr(err)

	is.Equal(len(result), 1)
	is.Equal(result[0].DateOfBirth, "2021-03-04")
}

func TestQueryDateRangeHandlesBothStoredFormats(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db,
		entities.FormData{Type: "dog", DateOfBirth: "2020-01-01", EyeColor: "blue"},
		entities.FormData{Type: "cat", DateOfBirth: "01/01/2020", EyeColor: "green"},
		entities.FormData{Type: "cat", DateOfBirth: "02/01/2020", EyeColor: "green"},
		entities.FormData{Type: "person", DateOfBirth: "2019-12-31", EyeColor: "brown"},
	)

	result, err := db.QueryEntities(ctx, entities.Filters{DateFrom: "2020-01-01", DateTo: "2020-01-01"})
	is.NoErr(err)

	is.Equal(len(result), 2) // both representations of 2020-01-01 should match
	is.Equal(result[0].DateOfBirth, "2020-01-01")
	is.Equal(result[1].DateOfBirth, "01/01/2020")
}

func TestQueryDateRangeExcludesUnparseableDates(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db,
		entities.FormData{Type: "dog", DateOfBirth: "sometime in may", EyeColor: "blue"},
		entities.FormData{Type: "dog", DateOfBirth: "2020-05-01", EyeColor: "blue"},
	)

	result, err := db.QueryEntities(ctx, entities.Filters{DateFrom: "2000-01-01"})
	is.NoErr(err)
	is.Equal(len(result), 1)

	result, err = db.QueryEntities(ctx, entities.Filters{})
	is.NoErr(err)
	is.Equal(len(result), 2) // unrestricted reads should still include it
}

func TestQueryWithMalformedBoundIsABadRequest(t *testing.T) {
	is, ctx, db := setupTest(t)

	_, err := db.QueryEntities(ctx, entities.Filters{DateTo: "31/12/2020"})
	is.True(errors.Is(err, entities.ErrBadRequest))
}

func TestQueryWithExplicitEmptySetReturnsNothing(t *testing.T) {
	is, ctx, db := setupTest(t)

	seed(is, ctx, db, entities.FormData{Type: "dog", DateOfBirth: "2020-05-01", EyeColor: "blue"})

	result, err := db.QueryEntities(ctx, entities.Filters{Types: []string{}})
	is.NoErr(err)
	is.Equal(len(result), 0)
}

func TestCreateEntityAssignsID(t *testing.T) {
	is, ctx, db := setupTest(t)

	e, err := db.CreateEntity(ctx, entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)

	is.True(e.ID > 0)
	is.Equal(e.Type, "dog")
	is.Equal(e.DateOfBirth, "2019-05-20")
	is.Equal(e.EyeColor, "blue")
	is.True(e.CreatedAt != nil) // created_at should be assigned by the store
}

func TestUpdateEntityOnlyOverwritesSuppliedFields(t *testing.T) {
	is, ctx, db := setupTest(t)

	e, err := db.CreateEntity(ctx, entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)

	green := "green"
	updated, err := db.UpdateEntity(ctx, e.ID, entities.Fields{EyeColor: &green})
	is.NoErr(err)

	is.Equal(updated.ID, e.ID)
	is.Equal(updated.Type, "dog")
	is.Equal(updated.DateOfBirth, "2019-05-20")
	is.Equal(updated.EyeColor, "green")
}

func TestUpdateEntityRefreshesUpdatedAt(t *testing.T) {
	is, ctx, db := setupTest(t)

	e, err := db.CreateEntity(ctx, entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)
	is.True(e.UpdatedAt != nil)

	_, err = db.(*store).db.ExecContext(ctx, "UPDATE entities SET updated_at = '2000-01-01 00:00:00' WHERE id = ?", e.ID)
	is.NoErr(err)

	brown := "brown"
	updated, err := db.UpdateEntity(ctx, e.ID, entities.Fields{EyeColor: &brown})
	is.NoErr(err)

	is.True(updated.UpdatedAt != nil)
	is.True(!updated.UpdatedAt.Before(*e.UpdatedAt)) // updated_at should be refreshed by the update
	is.True(updated.UpdatedAt.Year() > 2000)
	is.True(updated.CreatedAt.Equal(*e.CreatedAt)) // created_at should be left untouched
}

func TestUpdateUnknownEntityReturnsNotFound(t *testing.T) {
	is, ctx, db := setupTest(t)

	cat := "cat"
	_, err := db.UpdateEntity(ctx, 4711, entities.Fields{Type: &cat})
	is.True(errors.Is(err, entities.ErrNotFound))
}

func TestDeleteEntity(t *testing.T) {
	is, ctx, db := setupTest(t)

	e, err := db.CreateEntity(ctx, entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)

	deleted, err := db.DeleteEntity(ctx, e.ID)
	is.NoErr(err)
	is.True(deleted)

	deleted, err = db.DeleteEntity(ctx, e.ID)
	is.NoErr(err)
	is.True(!deleted) // second delete should not find the entity

	result, err := db.QueryEntities(ctx, entities.Filters{})
	is.NoErr(err)
	is.Equal(len(result), 0)
}

func TestUnsupportedDriver(t *testing.T) {
	is := is.New(t)

	_, err := New(context.Background(), Config{driver: "oracle"})
	is.True(err != nil)
}

func setupTest(t *testing.T) (*is.I, context.Context, Store) {
	is := is.New(t)
	ctx := context.Background()

	db, err := New(ctx, NewSQLiteConfig(":memory:"))
	is.NoErr(err)

	t.Cleanup(func() { db.Close() })

	return is, ctx, db
}

func seed(is *is.I, ctx context.Context, db Store, data ...entities.FormData) {
	for _, fd := range data {
		_, err := db.CreateEntity(ctx, fd)
		is.NoErr(err)
	}
}
