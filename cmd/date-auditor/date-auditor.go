package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/diwise/entity-registry/internal/pkg/infrastructure/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	appName string = "date-auditor"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	var normalize bool
	flag.BoolVar(&normalize, "normalize", false, "rewrite day/month/year dates of birth as YYYY-MM-DD")
	flag.Parse()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	cfg := database.LoadConfiguration(ctx)
	if cfg.Driver() != "postgres" && cfg.Driver() != "pgx" {
		log.Error("date auditor only supports postgres", "driver", cfg.Driver())
		os.Exit(1)
	}

	p, err := connect(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "err", err.Error())
		os.Exit(1)
	}
	defer p.Close()

	dates, err := getDatesOfBirth(ctx, p)
	if err != nil {
		log.Error("failed to get dates of birth", "err", err.Error())
		os.Exit(1)
	}

	r := audit(dates)

	for _, u := range r.unparseable {
		log.Warn("date of birth matches no known format", slog.Int64("entity_id", u.id), slog.String("date_of_birth", u.value))
	}

	log.Info("audit complete",
		slog.Int("total", r.total),
		slog.Int("european", len(r.rewrites)),
		slog.Int("unparseable", len(r.unparseable)),
	)

	if !normalize || len(r.rewrites) == 0 {
		return
	}

	err = rewriteDates(ctx, p, r.rewrites)
	if err != nil {
		log.Error("failed to normalize dates of birth", "err", err.Error())
		os.Exit(1)
	}

	log.Info("done normalizing", slog.Int("count", len(r.rewrites)))
}

type storedDate struct {
	id    int64
	value string
}

type report struct {
	total       int
	rewrites    []storedDate
	unparseable []storedDate
}

// audit sorts stored dates into those that need a rewrite to YYYY-MM-DD and
// those that can not be read at all. The rewrites carry the new value.
func audit(dates []storedDate) report {
	r := report{
		total:       len(dates),
		rewrites:    []storedDate{},
		unparseable: []storedDate{},
	}

	for _, d := range dates {
		iso, changed, err := database.NormalizeDate(d.value)
		if err != nil {
			r.unparseable = append(r.unparseable, d)
			continue
		}

		if changed {
			r.rewrites = append(r.rewrites, storedDate{id: d.id, value: iso})
		}
	}

	return r
}

func connect(ctx context.Context, cfg database.Config) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = conn.Ping(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func getDatesOfBirth(ctx context.Context, p *pgxpool.Pool) ([]storedDate, error) {
	rows, err := p.Query(ctx, `SELECT id, date_of_birth FROM entities ORDER BY id`)
	if err != nil {
		return nil, err
	}

	dates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storedDate, error) {
		var d storedDate
		err := row.Scan(&d.id, &d.value)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dates of birth: %w", err)
	}

	return dates, nil
}

func rewriteDates(ctx context.Context, p *pgxpool.Pool, rewrites []storedDate) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return err
	}

	for _, d := range rewrites {
		sql := `UPDATE entities SET date_of_birth = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

		_, err := tx.Exec(ctx, sql, d.value, d.id)
		if err != nil {
			tx.Rollback(ctx)
			return err
		}
	}

	return tx.Commit(ctx)
}
