package importer

import (
	"context"
	"database/sql"

	"partdb-tools/lib/sqliteutil"
	"partdb-tools/services/importer/db"

	"github.com/mazen160/go-random"
)

// History records one row per processed part into a local sqlite
// database so past runs can be inspected after the fact.
type History struct {
	RunId string

	sqldb *sql.DB
	qry   *db.Queries
}

func OpenHistory(path string) (*History, error) {
	runId, err := random.String(8)
	if err != nil {
		return nil, err
	}
	sqldb, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return nil, err
	}
	return &History{
		RunId: runId,
		sqldb: sqldb,
		qry:   db.New(sqldb),
	}, nil
}

func (h *History) Record(ctx context.Context, res ItemResult) error {
	return h.qry.InsertOutcome(ctx, db.InsertOutcomeParams{
		RunId:      h.RunId,
		Identifier: res.Request.Identifier,
		Quantity:   res.Request.Quantity,
		Outcome:    string(res.Outcome),
		Reason:     res.Reason,
	})
}

// Runs lists every recorded run, oldest first.
func (h *History) Runs(ctx context.Context) ([]db.RunRow, error) {
	return h.qry.ListRuns(ctx)
}

// Outcomes lists the per-part outcomes of one run in processing order.
func (h *History) Outcomes(ctx context.Context, runId string) ([]db.OutcomeRow, error) {
	return h.qry.ListRunOutcomes(ctx, runId)
}

func (h *History) Close() error {
	return h.sqldb.Close()
}
