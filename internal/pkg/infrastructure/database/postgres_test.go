package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/matryer/is"
)

func TestNewCreatesTableInPostgres(t *testing.T) {
	is := is.New(t)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	is.NoErr(err)

	defer func(open func(string, string) (*sql.DB, error)) { sqlOpen = open }(sqlOpen)
	sqlOpen = func(driverName, _ string) (*sql.DB, error) {
		is.Equal(driverName, "pgx")
		return db, nil
	}

	mock.ExpectPing()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS entities (")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	t.Setenv("DB_DRIVER", "postgres")

	s, err := New(context.Background(), LoadConfiguration(context.Background()))
	is.NoErr(err)
	is.True(s != nil)

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresQueryUsesNumberedPlaceholders(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM entities WHERE type IN ($1, $2) AND eye_color IN ($3) ORDER BY id")).
		WithArgs("cat", "dog", "green").
		WillReturnRows(entityRows().AddRow(2, "cat", "01/01/2020", "green", time.Now(), time.Now()))

	result, err := s.QueryEntities(context.Background(), entities.Filters{
		Types:     []string{"cat", "dog"},
		EyeColors: []string{"green"},
	})
	is.NoErr(err)
	is.Equal(len(result), 1)
	is.True(result[0].CreatedAt != nil)

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresInsertReturnsCreatedEntity(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entities (type, date_of_birth, eye_color) VALUES ($1, $2, $3) RETURNING id")).
		WithArgs("dog", "2019-05-20", "blue").
		WillReturnRows(entityRows().AddRow(7, "dog", "2019-05-20", "blue", time.Now(), time.Now()))

	e, err := s.CreateEntity(context.Background(), entities.FormData{Type: "dog", DateOfBirth: "2019-05-20", EyeColor: "blue"})
	is.NoErr(err)
	is.Equal(e.ID, int64(7))

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresUpdateCoalescesOmittedFields(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE entities SET type = COALESCE($1, type), date_of_birth = COALESCE($2, date_of_birth), eye_color = COALESCE($3, eye_color), updated_at = CURRENT_TIMESTAMP")).
		WithArgs(nil, nil, "green", int64(7)).
		WillReturnRows(entityRows().AddRow(7, "dog", "2019-05-20", "green", time.Now(), time.Now()))

	green := "green"
	e, err := s.UpdateEntity(context.Background(), 7, entities.Fields{EyeColor: &green})
	is.NoErr(err)
	is.Equal(e.EyeColor, "green")

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresUpdateWithoutMatchingRowIsNotFound(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE entities SET")).
		WillReturnRows(entityRows())

	cat := "cat"
	_, err := s.UpdateEntity(context.Background(), 42, entities.Fields{Type: &cat})
	is.True(errors.Is(err, entities.ErrNotFound))

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresDeleteReportsWhetherARowWasRemoved(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entities WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.DeleteEntity(context.Background(), 42)
	is.NoErr(err)
	is.True(!deleted)

	is.NoErr(mock.ExpectationsWereMet())
}

func TestPostgresConnectionFailureIsReturned(t *testing.T) {
	is, s, mock := setupPostgresTest(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset by peer"))

	_, err := s.QueryEntities(context.Background(), entities.Filters{})
	is.True(err != nil)
	is.True(!errors.Is(err, entities.ErrBadRequest)) // store failures are not the caller's fault
}

func entityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "type", "date_of_birth", "eye_color", "created_at", "updated_at"})
}

func setupPostgresTest(t *testing.T) (*is.I, Store, sqlmock.Sqlmock) {
	is := is.New(t)

	db, mock, err := sqlmock.New()
	is.NoErr(err)
	t.Cleanup(func() { db.Close() })

	return is, &store{db: db, dialect: postgres{}}, mock
}
