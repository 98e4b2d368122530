package store

import (
	"context"
	"fmt"

	"github.com/roach88/wavesense/internal/trace"
)

// Run is the metadata row for one harness invocation.
type Run struct {
	Token     string
	Scenario  string
	VCDPath   string
	Snapshots int
	CreatedAt string
}

// RecordRun stores a completed run and its full snapshot timeline in one
// transaction: either the whole run lands or none of it does.
func (s *Store) RecordRun(ctx context.Context, run Run, events []trace.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (token, scenario, vcd_path, snapshots) VALUES (?, ?, ?, ?)`,
		run.Token, run.Scenario, run.VCDPath, len(events),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.Token, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshots (run_token, time, clk, rst, en, count) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, run.Token, e.Time, e.Clk, e.Rst, e.En, e.Count); err != nil {
			return fmt.Errorf("insert snapshot t=%d: %w", e.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.Token, err)
	}
	return nil
}
