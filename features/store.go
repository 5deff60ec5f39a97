// SPDX-License-Identifier: MIT

package features

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/spweights/logger"
)

// Store persists datasets, computed output fields and run reports in a
// SQLite database.
type Store struct {
	db  *sql.DB
	log logger.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger routes store notifications to l.
func WithStoreLogger(l logger.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Run is one recorded model-selection or conversion run.
type Run struct {
	ID        string
	Dataset   string
	Label     string
	Report    []byte // JSON document
	CreatedAt time.Time
}

// OpenStore opens (or creates) the database at dsn and applies the schema.
// ":memory:" gives a private in-memory store.
func OpenStore(ctx context.Context, dsn string, opts ...StoreOption) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each pooled connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		name TEXT PRIMARY KEY,
		id_field TEXT NOT NULL DEFAULT '',
		has_coords INTEGER NOT NULL DEFAULT 0,
		has_adjacency INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS dataset_fields (
		dataset TEXT NOT NULL REFERENCES datasets(name) ON DELETE CASCADE,
		name TEXT NOT NULL,
		alias TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		PRIMARY KEY (dataset, name)
	);

	CREATE TABLE IF NOT EXISTS features (
		dataset TEXT NOT NULL REFERENCES datasets(name) ON DELETE CASCADE,
		ord INTEGER NOT NULL,
		id INTEGER NOT NULL,
		x REAL,
		y REAL,
		PRIMARY KEY (dataset, id)
	);

	CREATE TABLE IF NOT EXISTS feature_values (
		dataset TEXT NOT NULL,
		id INTEGER NOT NULL,
		field TEXT NOT NULL,
		value REAL,
		PRIMARY KEY (dataset, id, field)
	);

	CREATE TABLE IF NOT EXISTS adjacency (
		dataset TEXT NOT NULL,
		id INTEGER NOT NULL,
		neighbor INTEGER NOT NULL,
		PRIMARY KEY (dataset, id, neighbor)
	);

	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		report TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_features_order ON features(dataset, ord);
	CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Save replaces the dataset stored under ds.Name.
func (s *Store) Save(ctx context.Context, ds *Dataset) error {
	if ds.Name == "" {
		return fmt.Errorf("%w: dataset has no name", ErrInvalidDataset)
	}
	if err := ds.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteDataset(ctx, tx, ds.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (name, id_field, has_coords, has_adjacency) VALUES (?, ?, ?, ?)`,
		ds.Name, ds.IDField, ds.Coords != nil, ds.Adjacency != nil,
	); err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	for i, id := range ds.IDs {
		var x, y sql.NullFloat64
		if ds.Coords != nil {
			x = sql.NullFloat64{Float64: ds.Coords[i][0], Valid: true}
			y = sql.NullFloat64{Float64: ds.Coords[i][1], Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO features (dataset, ord, id, x, y) VALUES (?, ?, ?, ?, ?)`,
			ds.Name, i, id, x, y,
		); err != nil {
			return fmt.Errorf("failed to insert feature %d: %w", id, err)
		}
	}

	cols := make([]Column, 0, len(ds.order))
	for _, name := range ds.order {
		cols = append(cols, Column{Name: name, Values: ds.columns[name]})
	}
	if err := writeColumns(ctx, tx, ds.Name, ds.IDs, cols, 0); err != nil {
		return err
	}

	for id, nbs := range ds.Adjacency {
		for _, nb := range nbs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO adjacency (dataset, id, neighbor) VALUES (?, ?, ?)`,
				ds.Name, id, nb,
			); err != nil {
				return fmt.Errorf("failed to insert adjacency %d -> %d: %w", id, nb, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	s.log.Debug("dataset saved", "dataset", ds.Name, "features", len(ds.IDs), "fields", len(cols))
	return nil
}

func deleteDataset(ctx context.Context, tx *sql.Tx, name string) error {
	for _, table := range []string{"feature_values", "adjacency", "features", "dataset_fields"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE dataset = ?`, name); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to clear dataset: %w", err)
	}
	return nil
}

// writeColumns upserts field definitions starting at position base and
// their values, aligned with ids. NaN is stored as NULL.
func writeColumns(ctx context.Context, tx *sql.Tx, dataset string, ids []int, cols []Column, base int) error {
	for j, col := range cols {
		if len(col.Values) != len(ids) {
			return fmt.Errorf("%w: field %q has %d values for %d features", ErrInvalidDataset, col.Name, len(col.Values), len(ids))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_fields (dataset, name, alias, position) VALUES (?, ?, ?, ?)
			 ON CONFLICT(dataset, name) DO UPDATE SET alias = excluded.alias`,
			dataset, col.Name, col.Alias, base+j,
		); err != nil {
			return fmt.Errorf("failed to insert field %q: %w", col.Name, err)
		}
		for i, id := range ids {
			var v sql.NullFloat64
			if !math.IsNaN(col.Values[i]) {
				v = sql.NullFloat64{Float64: col.Values[i], Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO feature_values (dataset, id, field, value) VALUES (?, ?, ?, ?)
				 ON CONFLICT(dataset, id, field) DO UPDATE SET value = excluded.value`,
				dataset, id, col.Name, v,
			); err != nil {
				return fmt.Errorf("failed to insert value %q for %d: %w", col.Name, id, err)
			}
		}
	}
	return nil
}

// Load reads the dataset stored under name. NULL values load as NaN.
func (s *Store) Load(ctx context.Context, name string) (*Dataset, error) {
	var (
		idField       string
		hasXY, hasAdj bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id_field, has_coords, has_adjacency FROM datasets WHERE name = ?`, name,
	).Scan(&idField, &hasXY, &hasAdj)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	ids, coords, err := s.loadFeatures(ctx, name)
	if err != nil {
		return nil, err
	}
	ds := NewDataset(name, idField, ids)
	if hasXY {
		ds.Coords = coords
	}

	fields, err := s.fieldNames(ctx, name)
	if err != nil {
		return nil, err
	}
	pos := make(map[int]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	values := make(map[string][]float64, len(fields))
	for _, f := range fields {
		col := make([]float64, len(ids))
		for i := range col {
			col[i] = math.NaN()
		}
		values[f] = col
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, field, value FROM feature_values WHERE dataset = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id    int
			field string
			v     sql.NullFloat64
		)
		if err := rows.Scan(&id, &field, &v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		col, ok := values[field]
		i, known := pos[id]
		if !ok || !known || !v.Valid {
			continue
		}
		col[i] = v.Float64
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range fields {
		if err := ds.AddField(f, values[f]); err != nil {
			return nil, err
		}
	}

	if hasAdj {
		if ds.Adjacency, err = s.loadAdjacency(ctx, name, ids); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (s *Store) loadFeatures(ctx context.Context, name string) ([]int, [][2]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, x, y FROM features WHERE dataset = ? ORDER BY ord`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var (
		ids    []int
		coords [][2]float64
	)
	for rows.Next() {
		var (
			id   int
			x, y sql.NullFloat64
		)
		if err := rows.Scan(&id, &x, &y); err != nil {
			return nil, nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		ids = append(ids, id)
		coords = append(coords, [2]float64{x.Float64, y.Float64})
	}
	return ids, coords, rows.Err()
}

func (s *Store) fieldNames(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM dataset_fields WHERE dataset = ? ORDER BY position, name`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) loadAdjacency(ctx context.Context, name string, ids []int) (map[int][]int, error) {
	adj := make(map[int][]int, len(ids))
	for _, id := range ids {
		adj[id] = []int{}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, neighbor FROM adjacency WHERE dataset = ? ORDER BY id, neighbor`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjacency: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, nb int
		if err := rows.Scan(&id, &nb); err != nil {
			return nil, fmt.Errorf("failed to scan adjacency: %w", err)
		}
		adj[id] = append(adj[id], nb)
	}
	return adj, rows.Err()
}

// Datasets lists the stored dataset names, ascending.
func (s *Store) Datasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// WriteFields adds or overwrites output fields of a stored dataset. Each
// column is aligned with the dataset's stored order.
func (s *Store) WriteFields(ctx context.Context, dataset string, cols []Column) error {
	ids, _, err := s.loadFeatures(ctx, dataset)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, dataset)
	}
	existing, err := s.fieldNames(ctx, dataset)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeColumns(ctx, tx, dataset, ids, cols, len(existing)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE datasets SET updated_at = CURRENT_TIMESTAMP WHERE name = ?`, dataset); err != nil {
		return fmt.Errorf("failed to touch dataset: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fields: %w", err)
	}
	for _, c := range cols {
		s.log.Info("field written", "dataset", dataset, "field", c.Name, "alias", c.Alias)
	}
	return nil
}

// SaveRun records a run report.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run has no ID", ErrInvalidDataset)
	}
	report := string(run.Report)
	if report == "" {
		report = "{}"
	}
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, dataset, label, report, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Dataset, run.Label, report, created,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Runs lists the runs recorded for dataset, oldest first.
func (s *Store) Runs(ctx context.Context, dataset string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, dataset, label, report, created_at FROM runs WHERE dataset = ? ORDER BY created_at, run_id`,
		dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r      Run
			report string
		)
		if err := rows.Scan(&r.ID, &r.Dataset, &r.Label, &report, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Report = []byte(report)
		out = append(out, r)
	}
	return out, rows.Err()
}
