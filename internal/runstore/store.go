// Package runstore persists pipeline results in a SQLite database so
// separate command invocations can be listed and compared later.
package runstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DBFileName is the database file created under the data directory.
const DBFileName = "runs.db"

// timeLayout is fixed-width so lexicographic ordering on the stored
// column matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Sentinel errors for store operations.
var (
	ErrNotFound  = errors.New("run not found")
	ErrClosed    = errors.New("run store is closed")
	ErrInvalidID = errors.New("invalid run id")
)

// Record is one persisted pipeline result.
type Record struct {
	RunID            string    `json:"run_id"`
	CreatedAt        time.Time `json:"created_at"`
	Molecule         string    `json:"molecule"`
	Geometry         string    `json:"geometry"`
	Basis            string    `json:"basis"`
	Method           string    `json:"method"`
	Encoding         string    `json:"encoding"`
	ElectronicEnergy float64   `json:"electronic_energy"`
	NuclearRepulsion float64   `json:"nuclear_repulsion"`
	TotalEnergy      float64   `json:"total_energy"`
	EnergyShift      float64   `json:"energy_shift"`
	Iterations       int       `json:"iterations"`
	Evaluations      int       `json:"evaluations"`
	Parameters       []float64 `json:"parameters,omitempty"`
}

// Filter narrows List output. Zero values match everything.
type Filter struct {
	Molecule string
	Method   string
	Limit    int
}

// Store wraps the runs database.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// runColumns is the scan order shared by every SELECT.
const runColumns = "run_id, created_at, molecule, geometry, basis, method, encoding, " +
	"electronic_energy, nuclear_repulsion, total_energy, energy_shift, " +
	"iterations, evaluations, parameters"

// Open creates the data directory if needed, opens the database under
// it, and applies the schema.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening runs database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Save upserts a record, assigning a time-ordered run ID and creation
// time when absent, and returns the record's ID.
func (s *Store) Save(rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	if rec.RunID == "" {
		rec.RunID = newRunID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	params, err := json.Marshal(rec.Parameters)
	if err != nil {
		return "", fmt.Errorf("encoding parameters: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		rec.RunID, rec.CreatedAt.UTC().Format(timeLayout), rec.Molecule, rec.Geometry,
		rec.Basis, rec.Method, rec.Encoding, rec.ElectronicEnergy, rec.NuclearRepulsion,
		rec.TotalEnergy, rec.EnergyShift, rec.Iterations, rec.Evaluations, string(params),
	)
	if err != nil {
		return "", fmt.Errorf("persisting run %s: %w", rec.RunID, err)
	}
	return rec.RunID, nil
}

// Get retrieves a record by run ID.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrClosed
	}
	if id == "" {
		return Record{}, ErrInvalidID
	}

	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("getting run %s: %w", id, err)
	}
	return rec, nil
}

// List returns records newest first, narrowed by the filter.
func (s *Store) List(f Filter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	query := "SELECT " + runColumns + " FROM runs"
	var conds []string
	var args []any
	if f.Molecule != "" {
		conds = append(conds, "molecule = ?")
		args = append(args, f.Molecule)
	}
	if f.Method != "" {
		conds = append(conds, "method = ?")
		args = append(args, f.Method)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, run_id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes a record by run ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if id == "" {
		return ErrInvalidID
	}

	res, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every record and reports how many were dropped.
func (s *Store) Clear() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	res, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clearing runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Record, error) {
	var rec Record
	var createdAt, params string
	err := row.Scan(&rec.RunID, &createdAt, &rec.Molecule, &rec.Geometry, &rec.Basis,
		&rec.Method, &rec.Encoding, &rec.ElectronicEnergy, &rec.NuclearRepulsion,
		&rec.TotalEnergy, &rec.EnergyShift, &rec.Iterations, &rec.Evaluations, &params)
	if err != nil {
		return Record{}, err
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &rec.Parameters); err != nil {
		return Record{}, fmt.Errorf("parsing parameters: %w", err)
	}
	return rec, nil
}

// newRunID returns a time-ordered UUID, falling back to random if the
// v7 source fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
