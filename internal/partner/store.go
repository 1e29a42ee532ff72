package partner

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// migrations is the ordered list applied by Open.
var migrations = []string{
	`CREATE TABLE partners (
		id          INTEGER PRIMARY KEY,
		name        TEXT UNIQUE NOT NULL,
		standard    TEXT NOT NULL,
		qualifier   TEXT NOT NULL DEFAULT '',
		identifier  TEXT NOT NULL DEFAULT '',
		version     TEXT NOT NULL DEFAULT '',
		use_groups  INTEGER NOT NULL DEFAULT 0,
		line_breaks INTEGER NOT NULL DEFAULT 0,
		elem_sep    TEXT NOT NULL DEFAULT '',
		comp_sep    TEXT NOT NULL DEFAULT '',
		rep_sep     TEXT NOT NULL DEFAULT '',
		seg_term    TEXT NOT NULL DEFAULT '',
		release     TEXT NOT NULL DEFAULT '',
		decimal     TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE receipts (
		id             TEXT PRIMARY KEY,
		standard       TEXT NOT NULL,
		sender         TEXT NOT NULL,
		receiver       TEXT NOT NULL,
		control_number TEXT NOT NULL,
		ok             INTEGER NOT NULL,
		error_count    INTEGER NOT NULL,
		received_at    DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE UNIQUE INDEX receipts_identity
		ON receipts (standard, sender, receiver, control_number)`,
}

// Store wraps the sqlite database holding partner profiles and receipts.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}

// Put inserts or updates a partner profile by name.
func (s *Store) Put(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d := cfg.Delimiters
	if d == nil {
		d = &Delimiters{}
	}
	_, err := s.db.Exec(`
		INSERT INTO partners (name, standard, qualifier, identifier, version, use_groups, line_breaks,
			elem_sep, comp_sep, rep_sep, seg_term, release, decimal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			standard = excluded.standard,
			qualifier = excluded.qualifier,
			identifier = excluded.identifier,
			version = excluded.version,
			use_groups = excluded.use_groups,
			line_breaks = excluded.line_breaks,
			elem_sep = excluded.elem_sep,
			comp_sep = excluded.comp_sep,
			rep_sep = excluded.rep_sep,
			seg_term = excluded.seg_term,
			release = excluded.release,
			decimal = excluded.decimal,
			updated_at = datetime('now')
	`, cfg.Name, cfg.Standard, cfg.Qualifier, cfg.Identifier, cfg.Version,
		cfg.UseGroups, cfg.LineBreaks,
		d.Element, d.Component, d.Repetition, d.Segment, d.Release, d.Decimal)
	if err != nil {
		return fmt.Errorf("storing partner %s: %w", cfg.Name, err)
	}
	return nil
}

// Get loads one partner profile by name.
func (s *Store) Get(name string) (*Config, error) {
	row := s.db.QueryRow(`
		SELECT name, standard, qualifier, identifier, version, use_groups, line_breaks,
			elem_sep, comp_sep, rep_sep, seg_term, release, decimal
		FROM partners WHERE name = ?`, name)
	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("partner %s not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading partner %s: %w", name, err)
	}
	return cfg, nil
}

// List returns all partner profiles ordered by name.
func (s *Store) List() ([]Config, error) {
	rows, err := s.db.Query(`
		SELECT name, standard, qualifier, identifier, version, use_groups, line_breaks,
			elem_sep, comp_sep, rep_sep, seg_term, release, decimal
		FROM partners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}
	defer rows.Close()

	var out []Config
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning partner: %w", err)
		}
		out = append(out, *cfg)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConfig(row scanner) (*Config, error) {
	var cfg Config
	var d Delimiters
	err := row.Scan(&cfg.Name, &cfg.Standard, &cfg.Qualifier, &cfg.Identifier, &cfg.Version,
		&cfg.UseGroups, &cfg.LineBreaks,
		&d.Element, &d.Component, &d.Repetition, &d.Segment, &d.Release, &d.Decimal)
	if err != nil {
		return nil, err
	}
	if d != (Delimiters{}) {
		cfg.Delimiters = &d
	}
	return &cfg, nil
}

// Receipt records one processed interchange for duplicate detection.
type Receipt struct {
	ID            string
	Standard      string
	Sender        string
	Receiver      string
	ControlNumber string
	OK            bool
	ErrorCount    int
	ReceivedAt    time.Time
}

// Record logs a receipt, reporting whether an interchange with the same
// identity (standard, sender, receiver, control number) was seen before.
func (s *Store) Record(r Receipt) (duplicate bool, err error) {
	var existing string
	err = s.db.QueryRow(`
		SELECT id FROM receipts
		WHERE standard = ? AND sender = ? AND receiver = ? AND control_number = ?`,
		r.Standard, r.Sender, r.Receiver, r.ControlNumber).Scan(&existing)
	switch {
	case err == nil:
		return true, nil
	case err != sql.ErrNoRows:
		return false, fmt.Errorf("checking receipts: %w", err)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err = s.db.Exec(`
		INSERT INTO receipts (id, standard, sender, receiver, control_number, ok, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Standard, r.Sender, r.Receiver, r.ControlNumber, r.OK, r.ErrorCount)
	if err != nil {
		return false, fmt.Errorf("recording receipt: %w", err)
	}
	return false, nil
}

// Receipts returns the receipt log, newest first.
func (s *Store) Receipts() ([]Receipt, error) {
	rows, err := s.db.Query(`
		SELECT id, standard, sender, receiver, control_number, ok, error_count, received_at
		FROM receipts ORDER BY received_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		var r Receipt
		if err := rows.Scan(&r.ID, &r.Standard, &r.Sender, &r.Receiver, &r.ControlNumber, &r.OK, &r.ErrorCount, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
