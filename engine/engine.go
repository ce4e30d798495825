package engine

import (
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open registers the vector functions and opens a SQLite database using the
// modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". Note that each
// pooled connection to ":memory:" sees its own empty database.
func Open(dsn string) (*sql.DB, error) {
	if err := RegisterVectorFunctions(); err != nil {
		return nil, err
	}
	return sql.Open(DriverName, dsn)
}

// FileDSN returns a DSN for a database file with settings suited to
// concurrent use from a connection pool: a busy timeout so writers wait for
// each other instead of failing, and WAL so readers do not block writers.
func FileDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
