// Package trace records propagation runs into a SQLite database so they can
// be inspected or replayed later.
//
// A Recorder is a wavefront.Observer. Each frame it receives is stored as a
// zstd-compressed blob of cells in sweep order, keyed by run and sequence
// number.
//
//	rec, _ := trace.Open("runs.db")
//	defer rec.Close()
//	run, _ := rec.Begin("wall-between", grid)
//	move := grid.Propagate(rec)
//	_ = rec.Finish(move)
package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/wavefront/wavefront"
)

// Sentinel errors for trace operations.
var (
	// ErrEmptyPath indicates Open was called without a database path.
	ErrEmptyPath = errors.New("trace: empty db path")
	// ErrNoRun indicates Wave or Finish was called before Begin.
	ErrNoRun = errors.New("trace: no run in progress")
	// ErrRunNotFound indicates an unknown run id.
	ErrRunNotFound = errors.New("trace: run not found")
)

// Run describes one recorded propagation.
type Run struct {
	ID        int64
	Label     string
	Width     int
	Height    int
	Frames    int
	Move      wavefront.Direction
	Finished  bool
	StartedAt time.Time
}

// Frame is one decoded observer frame.
type Frame struct {
	Seq   int
	Cells []wavefront.Cell // sweep order, x outer
}

// At returns the cell at (x,y) of a frame from a grid of the given height.
func (f Frame) At(height, x, y int) wavefront.Cell {
	return f.Cells[x*height+y]
}

// Recorder stores frames of one run at a time.
// It is not safe for concurrent use.
type Recorder struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder

	run int64
	seq int
	buf []byte
	err error
}

// Open opens or creates the database at path.
func Open(path string) (*Recorder, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		_ = db.Close()
		return nil, err
	}
	return &Recorder{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			move INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS frames (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			cells BLOB NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Begin starts a new run sized after v and makes it current. Any sticky
// error from the previous run is cleared.
func (r *Recorder) Begin(label string, v wavefront.View) (int64, error) {
	w, h := v.Size()
	res, err := r.db.Exec(
		`INSERT INTO runs(label, width, height, started_at) VALUES(?, ?, ?, ?)`,
		label, w, h, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.run, r.seq, r.err = id, 0, nil
	return id, nil
}

// Wave implements wavefront.Observer. Propagate cannot receive errors from
// an observer, so the first failure is kept and later frames are dropped;
// check Err or Finish afterwards.
func (r *Recorder) Wave(v wavefront.View) {
	if r.err != nil {
		return
	}
	if r.run == 0 {
		r.err = ErrNoRun
		return
	}
	cells := wavefront.Snapshot(v)
	raw := make([]byte, len(cells))
	for i, c := range cells {
		raw[i] = byte(c)
	}
	r.buf = r.enc.EncodeAll(raw, r.buf[:0])
	if _, err := r.db.Exec(
		`INSERT INTO frames(run_id, seq, cells) VALUES(?, ?, ?)`,
		r.run, r.seq, r.buf,
	); err != nil {
		r.err = fmt.Errorf("trace: frame %d: %w", r.seq, err)
		return
	}
	r.seq++
}

// Err returns the first error raised while recording the current run.
func (r *Recorder) Err() error { return r.err }

// Finish stores the propagation result and closes the current run. It
// returns the sticky recording error, if any.
func (r *Recorder) Finish(move wavefront.Direction) error {
	if r.run == 0 {
		return ErrNoRun
	}
	if _, err := r.db.Exec(
		`UPDATE runs SET move = ?, finished = 1 WHERE id = ?`, int(move), r.run,
	); err != nil {
		return err
	}
	r.run = 0
	return r.err
}

// Runs lists every recorded run, oldest first.
func (r *Recorder) Runs() ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT runs.id, label, width, height, move, finished, started_at,
			(SELECT COUNT(*) FROM frames WHERE frames.run_id = runs.id)
		FROM runs ORDER BY runs.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run      Run
			move     int
			finished int
			started  string
		)
		if err := rows.Scan(&run.ID, &run.Label, &run.Width, &run.Height,
			&move, &finished, &started, &run.Frames); err != nil {
			return nil, err
		}
		run.Move = wavefront.Direction(move)
		run.Finished = finished != 0
		at, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("trace: run %d started_at: %w", run.ID, err)
		}
		run.StartedAt = at
		out = append(out, run)
	}
	return out, rows.Err()
}

// Frames decodes every frame of run id in sequence order.
func (r *Recorder) Frames(id int64) ([]Frame, error) {
	var exists int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}

	rows, err := r.db.Query(`SELECT seq, cells FROM frames WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Frame
	for rows.Next() {
		var (
			seq  int
			blob []byte
		)
		if err := rows.Scan(&seq, &blob); err != nil {
			return nil, err
		}
		raw, err := r.dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("trace: decode frame %d: %w", seq, err)
		}
		cells := make([]wavefront.Cell, len(raw))
		for i, b := range raw {
			cells[i] = wavefront.Cell(b)
		}
		out = append(out, Frame{Seq: seq, Cells: cells})
	}
	return out, rows.Err()
}

// Close releases the codec and the database.
func (r *Recorder) Close() error {
	r.enc.Close()
	r.dec.Close()
	return r.db.Close()
}
