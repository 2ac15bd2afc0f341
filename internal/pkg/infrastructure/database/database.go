package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/entity-registry/pkg/entities"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Store is the persistent record store holding all entities
type Store interface {
	QueryEntities(ctx context.Context, filters entities.Filters) ([]entities.Entity, error)
	CreateEntity(ctx context.Context, data entities.FormData) (*entities.Entity, error)
	UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (*entities.Entity, error)
	DeleteEntity(ctx context.Context, id int64) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

var tracer = otel.Tracer("entity-registry/database")

type store struct {
	db      *sql.DB
	dialect Dialect
}

var sqlOpen = sql.Open

// New connects to the configured database and makes sure that the entity table exists
func New(ctx context.Context, cfg Config) (Store, error) {
	dialect, err := DialectFor(cfg.Driver())
	if err != nil {
		return nil, err
	}

	db, err := sqlOpen(dialect.DriverName(), cfg.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name(), err)
	}

	if dialect.Name() == "sqlite" {
		// a single connection keeps in-memory databases alive and serializes writers
		db.SetMaxOpenConns(1)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name(), err)
	}

	_, err = db.ExecContext(ctx, dialect.CreateTable())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure entity table: %w", err)
	}

	return &store{db: db, dialect: dialect}, nil
}

func (s *store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) QueryEntities(ctx context.Context, filters entities.Filters) (result []entities.Entity, err error) {
	ctx, span := tracer.Start(ctx, "query-entities",
		trace.WithAttributes(attribute.String("db.system", s.dialect.Name())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	q, err := NewQuery(filters)
	if err != nil {
		return nil, err
	}

	stmt, args := q.SQL(s.dialect)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}
	defer rows.Close()

	log := logging.GetFromContext(ctx)
	result = make([]entities.Entity, 0)

	for rows.Next() {
		var e entities.Entity
		e, err = scanEntity(rows)
		if err != nil {
			return nil, err
		}

		match, parseErr := q.MatchesDateRange(e.DateOfBirth)
		if parseErr != nil {
			log.Warn("excluding entity with unparseable date of birth", "id", e.ID, "err", parseErr.Error())
			continue
		}

		if match {
			result = append(result, e)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}

	return result, nil
}

func (s *store) CreateEntity(ctx context.Context, data entities.FormData) (e *entities.Entity, err error) {
	ctx, span := tracer.Start(ctx, "create-entity")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	p := s.dialect.Placeholder
	stmt := fmt.Sprintf(
		"INSERT INTO %s (type, date_of_birth, eye_color) VALUES (%s, %s, %s) RETURNING %s",
		tableName, p(1), p(2), p(3), selectColumns,
	)

	created, err := scanEntity(s.db.QueryRowContext(ctx, stmt, data.Type, data.DateOfBirth, data.EyeColor))
	if err != nil {
		return nil, fmt.Errorf("insert entity: %w", err)
	}

	return &created, nil
}

func (s *store) UpdateEntity(ctx context.Context, id int64, fields entities.Fields) (e *entities.Entity, err error) {
	ctx, span := tracer.Start(ctx, "update-entity",
		trace.WithAttributes(attribute.Int64("entity.id", id)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	p := s.dialect.Placeholder
	stmt := fmt.Sprintf(
		`UPDATE %s SET type = COALESCE(%s, type), date_of_birth = COALESCE(%s, date_of_birth), eye_color = COALESCE(%s, eye_color), updated_at = CURRENT_TIMESTAMP
		WHERE id = %s RETURNING %s`,
		tableName, p(1), p(2), p(3), p(4), selectColumns,
	)

	row := s.db.QueryRowContext(ctx, stmt,
		nullable(fields.Type), nullable(fields.DateOfBirth), nullable(fields.EyeColor), id,
	)

	updated, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = entities.NewNotFoundError("no entity with id " + strconv.FormatInt(id, 10))
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update entity: %w", err)
	}

	return &updated, nil
}

func (s *store) DeleteEntity(ctx context.Context, id int64) (deleted bool, err error) {
	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.Int64("entity.id", id)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = %s", tableName, s.dialect.Placeholder(1))

	res, err := s.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return false, fmt.Errorf("delete entity: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entity: %w", err)
	}

	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (entities.Entity, error) {
	var e entities.Entity
	var createdAt, updatedAt timestamp

	err := row.Scan(&e.ID, &e.Type, &e.DateOfBirth, &e.EyeColor, &createdAt, &updatedAt)
	if err != nil {
		return entities.Entity{}, err
	}

	e.CreatedAt = createdAt.ptr()
	e.UpdatedAt = updatedAt.ptr()

	return e, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// timestamp accepts the different representations that the drivers use for
// store assigned time columns
type timestamp struct {
	t     time.Time
	valid bool
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.valid = false
		return nil
	case time.Time:
		ts.t, ts.valid = v.UTC(), true
		return nil
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.t, ts.valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unknown timestamp format %q", s)
}

func (ts timestamp) ptr() *time.Time {
	if !ts.valid {
		return nil
	}
	t := ts.t
	return &t
}
