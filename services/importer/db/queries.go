package db

import (
	"context"
	"database/sql"
	"time"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type InsertOutcomeParams struct {
	RunId      string
	Identifier string
	Quantity   int
	Outcome    string
	Reason     string
}

func (q *Queries) InsertOutcome(ctx context.Context, params InsertOutcomeParams) error {
	_, err := q.db.ExecContext(
		ctx,
		`INSERT INTO import_outcome (run_id, identifier, quantity, outcome, reason, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		params.RunId,
		params.Identifier,
		params.Quantity,
		params.Outcome,
		params.Reason,
		time.Now().Unix(),
	)
	return err
}

type OutcomeRow struct {
	RunId      string
	Identifier string
	Quantity   int
	Outcome    string
	Reason     string
	RecordedAt int64
}

type RunRow struct {
	RunId     string
	Parts     int
	StartedAt int64
}

func (q *Queries) ListRuns(ctx context.Context) ([]RunRow, error) {
	rows, err := q.db.QueryContext(
		ctx,
		`SELECT run_id, COUNT(*), MIN(recorded_at)
		 FROM import_outcome GROUP BY run_id ORDER BY MIN(recorded_at), run_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		err := rows.Scan(&r.RunId, &r.Parts, &r.StartedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) ListRunOutcomes(ctx context.Context, runId string) ([]OutcomeRow, error) {
	rows, err := q.db.QueryContext(
		ctx,
		`SELECT run_id, identifier, quantity, outcome, reason, recorded_at
		 FROM import_outcome WHERE run_id = ? ORDER BY recorded_at, rowid`,
		runId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutcomeRow
	for rows.Next() {
		var r OutcomeRow
		err := rows.Scan(&r.RunId, &r.Identifier, &r.Quantity, &r.Outcome, &r.Reason, &r.RecordedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
