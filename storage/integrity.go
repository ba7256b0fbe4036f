package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// CheckSQLiteIntegrity runs PRAGMA integrity_check against the sqlite
// file at dsn using a plain database/sql connection, independent of the
// gorm pool used for normal reads/writes. feesimd calls this once at
// startup so a corrupted data file fails loudly before the HTTP server
// ever binds, rather than surfacing as a confusing run-storage error
// later. It always opens dsn with the sqlite driver; feesimd skips the
// call when the configured database driver is postgres.
func CheckSQLiteIntegrity(dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("storage: open sqlite %s: %w", dsn, err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("storage: integrity check %s: %w", dsn, err)
	}
	if result != "ok" {
		return fmt.Errorf("storage: sqlite integrity check failed for %s: %s", dsn, result)
	}
	return nil
}
