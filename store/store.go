package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tsawler/iges/model"
	"github.com/tsawler/iges/store/migrations"
)

// ErrNotFound is returned when a file has not been indexed.
var ErrNotFound = errors.New("store: not found")

// Store is an SQLite-backed entity index.
type Store struct {
	db   *sql.DB
	path string
}

// FileRecord describes one indexed file.
type FileRecord struct {
	ID         int64
	Path       string
	FileName   string
	Units      string
	EntryCount int
	IndexedAt  time.Time
}

// EntryRecord is one indexed directory entry.
type EntryRecord struct {
	FileID        int64
	Sequence      int
	EntityType    int
	Form          int
	ParameterData int
	LineFont      string
	Level         string
	Color         string
	Label         string
	ParamStr      string
}

// GlobalRecord is one indexed Global section parameter. Value is empty and
// Set false when the file left the parameter unset.
type GlobalRecord struct {
	Index int
	Name  string
	Value string
	Set   bool
}

// DefaultPath returns ~/.igsdump/index.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".igsdump", "index.db"), nil
}

// Open opens or creates the index at path. An empty path selects DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

// SaveDocument indexes doc under path, replacing any earlier index of the
// same path. It returns the new file ID.
func (s *Store) SaveDocument(ctx context.Context, path string, doc *model.Document) (int64, error) {
	if doc == nil {
		return 0, fmt.Errorf("no document to index")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM files WHERE path = ?", path); err != nil {
		return 0, fmt.Errorf("removing previous index: %w", err)
	}

	var fileName, units string
	if doc.Global != nil {
		fileName, units = doc.Global.FileName(), doc.Global.UnitsName()
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO files (path, file_name, units, entry_count, indexed_at)
		VALUES (?, ?, ?, ?, ?)
	`, path, fileName, units, doc.EntryCount(), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("saving file: %w", err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading file id: %w", err)
	}

	if doc.Global != nil {
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO global_params (file_id, idx, name, value) VALUES (?, ?, ?, ?)")
		if err != nil {
			return 0, fmt.Errorf("preparing global insert: %w", err)
		}
		defer stmt.Close()
		for _, p := range doc.Global.Parameters() {
			var value sql.NullString
			if p.Value.Set {
				value = sql.NullString{String: p.Text(), Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, fileID, p.Index, p.Name, value); err != nil {
				return 0, fmt.Errorf("saving global parameter %s: %w", p.Name, err)
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (file_id, sequence, entity_type, form, param_ptr, line_font, level, color, label, param_str)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	fonts := model.DefaultLineFonts()
	for _, e := range doc.Entries.Sorted() {
		if _, err := stmt.ExecContext(ctx, fileID, e.Sequence, e.EntityType(), e.Form(), e.ParameterData,
			e.LineFontName(fonts), strings.TrimSpace(e.Level), strings.TrimSpace(e.ColorNumber),
			e.Label(), e.ParamStr); err != nil {
			return 0, fmt.Errorf("saving entry %d: %w", e.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}
	return fileID, nil
}

const fileColumns = "id, path, file_name, units, entry_count, indexed_at"

func scanFile(row interface{ Scan(...any) error }) (FileRecord, error) {
	var f FileRecord
	var indexedAt sql.NullTime
	if err := row.Scan(&f.ID, &f.Path, &f.FileName, &f.Units, &f.EntryCount, &indexedAt); err != nil {
		return f, err
	}
	if indexedAt.Valid {
		f.IndexedAt = indexedAt.Time
	}
	return f, nil
}

// Files returns every indexed file ordered by path.
func (s *Store) Files(ctx context.Context) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+fileColumns+" FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating files: %w", err)
	}
	return files, nil
}

// File returns the index record for path.
func (s *Store) File(ctx context.Context, path string) (*FileRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+fileColumns+" FROM files WHERE path = ?", path)
	f, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning file: %w", err)
	}
	return &f, nil
}

// DeleteFile removes path and everything indexed for it.
func (s *Store) DeleteFile(ctx context.Context, path string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GlobalParams returns the Global section of a file in declaration order.
func (s *Store) GlobalParams(ctx context.Context, fileID int64) ([]GlobalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT idx, name, value FROM global_params WHERE file_id = ? ORDER BY idx", fileID)
	if err != nil {
		return nil, fmt.Errorf("querying global parameters: %w", err)
	}
	defer rows.Close()

	var params []GlobalRecord
	for rows.Next() {
		var p GlobalRecord
		var value sql.NullString
		if err := rows.Scan(&p.Index, &p.Name, &value); err != nil {
			return nil, fmt.Errorf("scanning global parameter: %w", err)
		}
		p.Value, p.Set = value.String, value.Valid
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating global parameters: %w", err)
	}
	return params, nil
}

// EntriesByType returns a file's entries of one entity type ordered by sequence.
func (s *Store) EntriesByType(ctx context.Context, fileID int64, entityType int) ([]EntryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_id, sequence, entity_type, form, param_ptr, line_font, level, color, label, param_str
		FROM entries WHERE file_id = ? AND entity_type = ?
		ORDER BY sequence
	`, fileID, entityType)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []EntryRecord
	for rows.Next() {
		var e EntryRecord
		if err := rows.Scan(&e.FileID, &e.Sequence, &e.EntityType, &e.Form, &e.ParameterData,
			&e.LineFont, &e.Level, &e.Color, &e.Label, &e.ParamStr); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// CountByType returns the number of entries per entity type in a file.
func (s *Store) CountByType(ctx context.Context, fileID int64) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT entity_type, COUNT(*) FROM entries WHERE file_id = ? GROUP BY entity_type", fileID)
	if err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var entityType, n int
		if err := rows.Scan(&entityType, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[entityType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
