// Package database handles the optional run history connection and schema inspection.
//
// It wraps GORM (Go Object Relational Mapping) and configures either a MySQL
// or a SQLite connection from the application's configuration. When no
// driver is configured the application runs without history.
//
// # Connect
//
// Connect opens the connection, applies pool settings and pings it within
// the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The SMR
// feature uses it after migration to verify the smr_runs table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Run history disabled", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "smr_runs")
package database
