package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/wavesense/internal/trace"
)

// ErrRunNotFound reports a lookup for a token with no recorded run.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns run metadata, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token, scenario, vcd_path, snapshots, created_at
		 FROM runs ORDER BY created_at DESC, token DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Token, &r.Scenario, &r.VCDPath, &r.Snapshots, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the metadata for one run token.
func (s *Store) GetRun(ctx context.Context, token string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx,
		`SELECT token, scenario, vcd_path, snapshots, created_at FROM runs WHERE token = ?`,
		token,
	).Scan(&r.Token, &r.Scenario, &r.VCDPath, &r.Snapshots, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, token)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", token, err)
	}
	return r, nil
}

// ReplayRun returns a run's snapshots in time order, reconstructing the
// exact trace the recorder saw.
func (s *Store) ReplayRun(ctx context.Context, token string) ([]trace.Event, error) {
	if _, err := s.GetRun(ctx, token); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT time, clk, rst, en, count FROM snapshots WHERE run_token = ? ORDER BY time`,
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("replay run %s: %w", token, err)
	}
	defer rows.Close()

	var events []trace.Event
	for rows.Next() {
		var e trace.Event
		if err := rows.Scan(&e.Time, &e.Clk, &e.Rst, &e.En, &e.Count); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
