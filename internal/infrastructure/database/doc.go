// Package database provides the SQLite connection used for load history.
//
// This package manages:
//   - Opening the database with WAL mode and a busy timeout
//   - Applying versioned SQL migrations from an fs.FS
//   - Health checks and shutdown
//
// The database is optional: the pipeline itself keeps no persistent state,
// and the history sink is only wired when database.enabled is set.
//
// # Usage
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if _, err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// # Migrations
//
// Migration files live at the root of the given filesystem and are named
// YYYYMMDD_HHMMSS_description.up.sql with an optional matching .down.sql.
// Each migration is applied in its own transaction and recorded in the
// schema_migrations table, so Migrate is idempotent.
//
// All queries use parameterised statements. The database file is created
// with mode 0600.
package database
