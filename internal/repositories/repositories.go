// package repositories provides SQLite persistence for local client state.
package repositories

import (
	"database/sql"
	"fmt"
)

// tableExists reports whether the named table has been created, so callers can return
// a clear error when migrations have not been run.
func tableExists(db *sql.DB, table string) (bool, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}

func requireTable(db *sql.DB, table string) error {
	ok, err := tableExists(db, table)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("table %s does not exist; run `shelf setup` first", table)
	}
	return nil
}
