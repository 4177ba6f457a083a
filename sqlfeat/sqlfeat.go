package sqlfeat

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:". Register SQL functions before opening the
// connections that should see them.
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }
