// Package history stores the outcome of every pipeline pass in SQLite.
//
// Each pass is a Run (load_runs table) with one Outcome per component
// (load_outcomes table). The history is append-only apart from Prune,
// which keeps the most recent runs.
//
//	repo := history.NewSQLiteRepository(db.DB)
//	res, err := repo.List(ctx, history.Filter{Status: "partial", Limit: 20})
package history
