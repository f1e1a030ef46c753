package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"discosync/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS collection (
  release_id BIGINT NOT NULL,
  master_id BIGINT,
  artist VARCHAR NOT NULL,
  title VARCHAR NOT NULL,
  date_added VARCHAR NOT NULL,
  variant VARCHAR NOT NULL,
  format VARCHAR NOT NULL,
  release_date VARCHAR NOT NULL,
  country VARCHAR NOT NULL,
  label VARCHAR NOT NULL,
  catno VARCHAR NOT NULL,
  genres VARCHAR NOT NULL,
  styles VARCHAR NOT NULL
  -- , barcode VARCHAR NOT NULL
  -- , resource_url VARCHAR NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key VARCHAR PRIMARY KEY,
  value VARCHAR NOT NULL,
  updatedAt TIMESTAMP NOT NULL DEFAULT current_timestamp
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceCollection swaps in the full row set of one sync pass. The table is
// rebuilt, not appended to: each invocation produces one dataset.
func (d *DB) ReplaceCollection(rows []internal.Row) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM collection`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO collection (
  release_id, master_id, artist, title, date_added, variant, format,
  release_date, country, label, catno, genres, styles
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(
			row.ReleaseID, nullableInt(row.MasterID), row.Artist, row.Title, row.DateAdded,
			row.Variant, row.Format, row.ReleaseDate, row.Country, row.Label,
			row.Catno, row.Genres, row.Styles,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) CountRows() (int, error) {
	var count int
	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM collection`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (d *DB) ListRows() ([]internal.Row, error) {
	rows, err := d.conn.Query(`
SELECT release_id, master_id, artist, title, date_added, variant, format,
       release_date, country, label, catno, genres, styles
FROM collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Row
	for rows.Next() {
		var row internal.Row
		var masterID sql.NullInt64
		if err := rows.Scan(
			&row.ReleaseID, &masterID, &row.Artist, &row.Title, &row.DateAdded,
			&row.Variant, &row.Format, &row.ReleaseDate, &row.Country, &row.Label,
			&row.Catno, &row.Genres, &row.Styles,
		); err != nil {
			return nil, err
		}
		if masterID.Valid {
			row.MasterID = int(masterID.Int64)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = now()
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return int64(v)
}
