package engine

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	gt.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec("CREATE TABLE t(x INTEGER)")
	gt.NoError(t, err)
	_, err = db.Exec("INSERT INTO t(x) VALUES (1),(2),(3)")
	gt.NoError(t, err)

	var n int
	gt.NoError(t, db.QueryRow("SELECT count(*) FROM t").Scan(&n))
	gt.Equal(t, n, 3)
}

func TestFileDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecmem.sqlite")
	db, err := Open(FileDSN(path))
	gt.NoError(t, err)
	defer db.Close()

	var mode string
	gt.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	gt.Equal(t, mode, "wal")

	var timeout int
	gt.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	gt.Equal(t, timeout, 5000)
}
