package targets

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/law-makers/phonecrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultTable holds one row per (site, path) with a position column for path order
const DefaultTable = "site_paths"

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type queryCloser interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
	Close()
}

// Postgres reads targets from a table with columns site, path and position
type Postgres struct {
	pool  queryCloser
	table string
}

// NewPostgres connects to dsn and returns a source reading from table
func NewPostgres(ctx context.Context, dsn, table string) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	src, err := NewPostgresWithPool(pool, table)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return src, nil
}

// NewPostgresWithPool builds a source from an existing pool
func NewPostgresWithPool(pool queryCloser, table string) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = DefaultTable
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Postgres{pool: pool, table: table}, nil
}

// Targets implements Source. Paths keep the order of the position column.
func (p *Postgres) Targets(ctx context.Context) (map[string]models.SiteTarget, error) {
	query := fmt.Sprintf("SELECT site, path FROM %s ORDER BY site, position", p.table)
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query targets: %w", err)
	}
	defer rows.Close()

	sites := make(map[string]models.SiteTarget)
	for rows.Next() {
		var site, path string
		if err := rows.Scan(&site, &path); err != nil {
			return nil, fmt.Errorf("scan target row: %w", err)
		}
		t := sites[site]
		t.Site = site
		t.Paths = append(t.Paths, path)
		sites[site] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read target rows: %w", err)
	}

	if err := validate(sites); err != nil {
		return nil, err
	}

	log.Debug().Str("table", p.table).Int("sites", len(sites)).Msg("Loaded targets from postgres")
	return sites, nil
}

// Close releases the connection pool
func (p *Postgres) Close() {
	p.pool.Close()
}
