// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweepdb archives parsed benchmark runs in a SQL database.
package sweepdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepfmt"
)

// DB is a high-level interface to a run archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
	insertReference   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	SourceFile VARCHAR(4096)
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	Seq INTEGER,
	Op VARCHAR(16),
	Threads INTEGER,
	ChunkMB DOUBLE,
	Throughput DOUBLE,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS ReferencePoints (
	RunID BIGINT UNSIGNED,
	Seq INTEGER,
	Label VARCHAR(255),
	BlockBytes BIGINT,
	ThroughputMBps DOUBLE,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(SourceFile) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements(RunID, Seq, Op, Threads, ChunkMB, Throughput) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertReference, err = db.sql.Prepare("INSERT INTO ReferencePoints(RunID, Seq, Label, BlockBytes, ThroughputMBps) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is one archived benchmark run. All measurements written to
// the Run share a run ID.
type Run struct {
	// ID identifies the run in the public API. The underlying
	// table uses an integer key; the int64 is cached here to
	// avoid repeated calls to strconv.
	ID string

	id  int64
	seq int64 // index of the next measurement to insert
	db  *DB
}

// NewRun creates a run record for storing new measurements.
func (db *DB) NewRun(ctx context.Context, sourceFile string) (*Run, error) {
	res, err := db.insertRun.ExecContext(ctx, sourceFile)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{
		ID: fmt.Sprint(i),
		id: i,
		db: db,
	}, nil
}

// InsertSweep archives every row of a parsed sweep table under the
// run, preserving row order.
func (r *Run) InsertSweep(ctx context.Context, t sweepfmt.Table) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertMeasurement)
	for _, row := range t.Rows {
		if _, err = stmt.ExecContext(ctx, r.id, r.seq, string(t.Op), row.Threads, row.ChunkMB, row.Throughput); err != nil {
			return err
		}
		r.seq++
	}
	return nil
}

// InsertReference archives a parsed reference table under the run.
func (r *Run) InsertReference(ctx context.Context, t osslfmt.Table) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, r.db.insertReference)
	for _, row := range t.Rows {
		if _, err = stmt.ExecContext(ctx, r.id, r.seq, row.Label, row.BlockBytes, row.ThroughputMBps); err != nil {
			return err
		}
		r.seq++
	}
	return nil
}

// Sweep reads back the archived sweep table of one operation, in
// insertion order.
func (db *DB) Sweep(ctx context.Context, runID string, op sweepfmt.Op) (sweepfmt.Table, error) {
	t := sweepfmt.Table{Op: op}
	id, err := strconv.ParseInt(runID, 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid run ID %q", runID)
	}
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Threads, ChunkMB, Throughput FROM Measurements WHERE RunID = ? AND Op = ? ORDER BY Seq",
		id, string(op))
	if err != nil {
		return t, err
	}
	defer rows.Close()
	for rows.Next() {
		var r sweepfmt.Row
		if err := rows.Scan(&r.Threads, &r.ChunkMB, &r.Throughput); err != nil {
			return t, err
		}
		t.Rows = append(t.Rows, r)
	}
	return t, rows.Err()
}

// Reference reads back the archived reference table of a run, in
// insertion order.
func (db *DB) Reference(ctx context.Context, runID string) (osslfmt.Table, error) {
	var t osslfmt.Table
	id, err := strconv.ParseInt(runID, 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid run ID %q", runID)
	}
	rows, err := db.sql.QueryContext(ctx,
		"SELECT Label, BlockBytes, ThroughputMBps FROM ReferencePoints WHERE RunID = ? ORDER BY Seq",
		id)
	if err != nil {
		return t, err
	}
	defer rows.Close()
	for rows.Next() {
		var r osslfmt.Row
		if err := rows.Scan(&r.Label, &r.BlockBytes, &r.ThroughputMBps); err != nil {
			return t, err
		}
		t.Rows = append(t.Rows, r)
	}
	return t, rows.Err()
}

// A RunInfo describes one archived run.
type RunInfo struct {
	ID         string
	SourceFile string
}

// Runs lists the archived runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, SourceFile FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var infos []RunInfo
	for rows.Next() {
		var id int64
		var info RunInfo
		if err := rows.Scan(&id, &info.SourceFile); err != nil {
			return nil, err
		}
		info.ID = fmt.Sprint(id)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	if err := db.insertReference.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
