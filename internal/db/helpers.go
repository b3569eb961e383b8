package db

import (
	"database/sql"
	"fmt"
)

// checkRowsAffected maps an update that matched nothing to ErrNotFound.
func checkRowsAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
