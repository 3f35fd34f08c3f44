package sqlite

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

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/custodia-labs/errcorpus/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
)

// attachedSchema is the schema name another database is attached under
// while merging.
const attachedSchema = "incoming"

// Ensure Store implements the interface.
var _ driven.DiagnosticStore = (*Store)(nil)

// Store is a corpus database backed by a single SQLite file.
type Store struct {
	db         *sql.DB
	path       string
	classifier driven.MessageClassifier
}

// Option configures a Store.
type Option func(*Store)

// WithClassifier sets the classifier used to populate sanitized_messages.
// It is private to the Store; the SQL functions keep the default catalog.
func WithClassifier(c driven.MessageClassifier) Option {
	return func(s *Store) {
		s.classifier = c
	}
}

// Open opens the corpus database at path, creating the file and its
// directory if needed. The schema is not applied; call ApplySchema.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", domain.ErrInvalidInput)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}

	if err := RegisterFunctions(); err != nil {
		return nil, fmt.Errorf("registering sql functions: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// ATTACH is per connection, and a slice database has a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s.db = db
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

// ApplySchema runs all pending migrations.
func (s *Store) ApplySchema(ctx context.Context) error {
	if err := s.migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// migrate runs every embedded NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
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
		if err := s.applyMigration(ctx, version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(ctx context.Context, version int, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}

	return tx.Commit()
}

// ==================== Diagnostics ====================

// InsertBatch stores diagnostics in one transaction.
// Any failure, including a key collision, leaves the database unchanged.
func (s *Store) InsertBatch(ctx context.Context, diagnostics []domain.Diagnostic) error {
	if len(diagnostics) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO all_messages (srcml_path, version, rank, start, "end", text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range diagnostics {
		if _, err := stmt.ExecContext(ctx, d.Path, d.Version, d.Rank, d.Start, d.End, d.Text); err != nil {
			if isConstraintViolation(err) {
				return fmt.Errorf("inserting diagnostic %s v%d #%d: %w", d.Path, d.Version, d.Rank, domain.ErrDuplicateKey)
			}
			return fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// FirstMessages returns the first diagnostic of every failed compilation,
// ordered by path and version.
func (s *Store) FirstMessages(ctx context.Context) ([]domain.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT srcml_path, version, start, "end", text
		FROM first_messages
		ORDER BY srcml_path, version
	`)
	if err != nil {
		return nil, fmt.Errorf("querying first messages: %w", err)
	}
	defer rows.Close()

	var diagnostics []domain.Diagnostic
	for rows.Next() {
		d := domain.Diagnostic{Rank: 1}
		if err := rows.Scan(&d.Path, &d.Version, &d.Start, &d.End, &d.Text); err != nil {
			return nil, fmt.Errorf("scanning first message: %w", err)
		}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics, rows.Err()
}

// ==================== Derived Tables ====================

// PopulateSourceLocations fills the source table for every path that has
// no location yet. Every pending path is decomposed before anything is
// written: one malformed path fails the call with
// domain.ErrConventionViolation and adds no rows.
func (s *Store) PopulateSourceLocations(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	paths, err := queryStrings(ctx, tx, `
		SELECT DISTINCT srcml_path FROM all_messages
		WHERE srcml_path NOT IN (SELECT srcml_path FROM source)
		ORDER BY srcml_path
	`)
	if err != nil {
		return 0, fmt.Errorf("querying unlocated paths: %w", err)
	}

	locations := make([]domain.SourceLocation, 0, len(paths))
	for _, p := range paths {
		loc, err := domain.ParseSourcePath(p)
		if err != nil {
			return 0, fmt.Errorf("locating source: %w", err)
		}
		locations = append(locations, loc)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO source (srcml_path, slice, project_id, source_file_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, loc := range locations {
		if _, err := stmt.ExecContext(ctx, loc.Path, loc.Slice, loc.ProjectID, loc.SourceFileID); err != nil {
			return 0, fmt.Errorf("inserting source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(locations), nil
}

// PopulateClassifiedMessages classifies every distinct message text that is
// not yet in sanitized_messages. Safe to call repeatedly.
func (s *Store) PopulateClassifiedMessages(ctx context.Context) (int, error) {
	if s.classifier == nil {
		return 0, fmt.Errorf("%w: store has no classifier", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	texts, err := queryStrings(ctx, tx, `
		SELECT DISTINCT text FROM all_messages
		WHERE text NOT IN (SELECT text FROM sanitized_messages)
		ORDER BY text
	`)
	if err != nil {
		return 0, fmt.Errorf("querying unclassified messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sanitized_messages (text, javac_name, sanitized_text)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, text := range texts {
		c := s.classifier.Classify(text)
		name := sql.NullString{String: c.JavacName(), Valid: c.Matched()}
		if _, err := stmt.ExecContext(ctx, text, name, c.SanitizedText); err != nil {
			return 0, fmt.Errorf("inserting classified message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(texts), nil
}

// ClassifiedMessages returns the rows of sanitized_messages ordered by text.
func (s *Store) ClassifiedMessages(ctx context.Context) ([]domain.ClassifiedMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, javac_name, sanitized_text FROM sanitized_messages ORDER BY text
	`)
	if err != nil {
		return nil, fmt.Errorf("querying classified messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ClassifiedMessage
	for rows.Next() {
		var (
			m    domain.ClassifiedMessage
			name sql.NullString
		)
		if err := rows.Scan(&m.Text, &name, &m.SanitizedText); err != nil {
			return nil, fmt.Errorf("scanning classified message: %w", err)
		}
		m.JavacName = name.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ==================== Merge ====================

// MergeFrom copies all_messages and source rows from the database at path.
// The copy is a single transaction: if any key already exists here the
// merge is rolled back and the error wraps domain.ErrDuplicateKey.
// Derived sanitized_messages rows are not copied; they are repopulated.
func (s *Store) MergeFrom(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("merging %s: %w", path, domain.ErrNotFound)
		}
		return fmt.Errorf("merging %s: %w", path, err)
	}
	if samePath(path, s.path) {
		return fmt.Errorf("%w: cannot merge %s into itself", domain.ErrInvalidInput, path)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS "+attachedSchema, path); err != nil {
		return fmt.Errorf("attaching %s: %w", path, err)
	}
	defer conn.ExecContext(context.Background(), "DETACH DATABASE "+attachedSchema) //nolint:errcheck

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	copies := []struct {
		table string
		query string
	}{
		{"all_messages", `
			INSERT INTO main.all_messages (srcml_path, version, rank, start, "end", text)
			SELECT srcml_path, version, rank, start, "end", text FROM ` + attachedSchema + `.all_messages
		`},
		{"source", `
			INSERT INTO main.source (srcml_path, slice, project_id, source_file_id)
			SELECT srcml_path, slice, project_id, source_file_id FROM ` + attachedSchema + `.source
		`},
	}
	for _, c := range copies {
		if _, err := tx.ExecContext(ctx, c.query); err != nil {
			if isConstraintViolation(err) {
				return fmt.Errorf("merging %s from %s: %w", c.table, path, domain.ErrDuplicateKey)
			}
			return fmt.Errorf("merging %s from %s: %w", c.table, path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Counts ====================

// CountMessages returns the number of rows in all_messages.
func (s *Store) CountMessages(ctx context.Context) (int, error) {
	return s.count(ctx, "all_messages")
}

// CountSources returns the number of rows in source.
func (s *Store) CountSources(ctx context.Context) (int, error) {
	return s.count(ctx, "source")
}

// CountClassified returns the number of rows in sanitized_messages.
func (s *Store) CountClassified(ctx context.Context) (int, error) {
	return s.count(ctx, "sanitized_messages")
}

func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// Slices returns the distinct slice labels in the source table.
func (s *Store) Slices(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT slice FROM source ORDER BY slice")
	if err != nil {
		return nil, fmt.Errorf("querying slices: %w", err)
	}
	defer rows.Close()

	var slices []string
	for rows.Next() {
		var slice string
		if err := rows.Scan(&slice); err != nil {
			return nil, fmt.Errorf("scanning slice: %w", err)
		}
		slices = append(slices, slice)
	}
	return slices, rows.Err()
}

// ==================== Helpers ====================

func queryStrings(ctx context.Context, tx *sql.Tx, query string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// isConstraintViolation reports whether err is a SQLite constraint failure.
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
