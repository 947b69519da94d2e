// Package migrate applies versioned SQL schema migrations from an
// embedded filesystem and records them in a schema_migrations table.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"

	// TargetBase rolls every applied migration back when passed to Down.
	TargetBase = "base"
)

var (
	ErrUnknownVersion = errors.New("unknown migration version")
	ErrMissingDown    = errors.New("migration has no down file")
	ErrEmptyMessage   = errors.New("migration message must not be empty")
)

// Migration is one versioned schema change loaded from the filesystem.
type Migration struct {
	Version string
	Name    string
	UpSQL   []byte
	DownSQL []byte
}

// HistoryEntry describes one known migration and whether it has been applied.
type HistoryEntry struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

// Head summarizes where the database sits relative to the available migrations.
type Head struct {
	Current string
	Latest  string
	Pending int
}

// Runner applies and rolls back migrations against a Postgres pool.
type Runner struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

func NewRunner(pool *pgxpool.Pool, fsys fs.FS) *Runner {
	return &Runner{pool: pool, fsys: fsys}
}

// Up applies every pending migration in version order. A non-empty target
// stops after that version has been applied. It returns the versions applied.
func (r *Runner) Up(ctx context.Context, target string) ([]string, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	available, err := LoadMigrations(r.fsys)
	if err != nil {
		return nil, err
	}

	target, err = resolveTarget(available, target)
	if err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	var done []string
	for _, m := range available {
		if _, ok := applied[m.Version]; ok {
			if m.Version == target {
				break
			}
			continue
		}
		if err := r.applyUp(ctx, m); err != nil {
			return done, fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		done = append(done, m.Version)
		if m.Version == target {
			break
		}
	}
	return done, nil
}

// Down rolls applied migrations back, newest first. An empty target rolls one
// step back, TargetBase rolls everything back, and any other target rolls back
// until that version is the newest one still applied. It returns the versions
// rolled back.
func (r *Runner) Down(ctx context.Context, target string) ([]string, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	available, err := LoadMigrations(r.fsys)
	if err != nil {
		return nil, err
	}
	byVersion := make(map[string]Migration, len(available))
	for _, m := range available {
		byVersion[m.Version] = m
	}

	if target != "" && target != TargetBase {
		target, err = resolveTarget(available, target)
		if err != nil {
			return nil, err
		}
	}

	applied, err := r.appliedInOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	if target != "" && target != TargetBase {
		found := false
		for _, v := range applied {
			if v == target {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s is not applied", ErrUnknownVersion, target)
		}
	}

	var done []string
	for i := len(applied) - 1; i >= 0; i-- {
		version := applied[i]
		if version == target {
			break
		}
		m, ok := byVersion[version]
		if !ok {
			return done, fmt.Errorf("%w: %s is applied but has no file", ErrUnknownVersion, version)
		}
		if len(m.DownSQL) == 0 {
			return done, fmt.Errorf("%w: %s", ErrMissingDown, version)
		}
		if err := r.applyDown(ctx, m); err != nil {
			return done, fmt.Errorf("roll back migration %s: %w", version, err)
		}
		done = append(done, version)
		if target == "" {
			break
		}
	}
	return done, nil
}

// Heads reports the newest applied version, the newest available version, and
// how many migrations are still pending.
func (r *Runner) Heads(ctx context.Context) (Head, error) {
	entries, err := r.History(ctx)
	if err != nil {
		return Head{}, err
	}

	var head Head
	for _, e := range entries {
		head.Latest = e.Version
		if e.Applied {
			head.Current = e.Version
		} else {
			head.Pending++
		}
	}
	return head, nil
}

// History lists every known migration in version order with its applied state.
func (r *Runner) History(ctx context.Context) ([]HistoryEntry, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	available, err := LoadMigrations(r.fsys)
	if err != nil {
		return nil, err
	}

	appliedAt, err := r.appliedTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(available))
	for _, m := range available {
		e := HistoryEntry{Version: m.Version, Name: m.Name}
		if at, ok := appliedAt[m.Version]; ok {
			e.Applied = true
			t := at
			e.AppliedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Create writes an empty up/down migration pair into dir using the next free
// version number and a slug derived from message. It returns the base name of
// the new pair.
func Create(dir, message string) (string, error) {
	slug := slugify(message)
	if slug == "" {
		return "", ErrEmptyMessage
	}

	next, err := nextVersion(dir)
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("%06d_%s", next, slug)
	header := fmt.Sprintf("-- %s\n", strings.ReplaceAll(slug, "_", " "))
	upPath := filepath.Join(dir, base+upSuffix)
	downPath := filepath.Join(dir, base+downSuffix)

	if err := os.WriteFile(upPath, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", upPath, err)
	}
	if err := os.WriteFile(downPath, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", downPath, err)
	}
	return base, nil
}

// LoadMigrations reads every up/down pair from fsys sorted by version.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var suffix string
		switch {
		case strings.HasSuffix(name, upSuffix):
			suffix = upSuffix
		case strings.HasSuffix(name, downSuffix):
			suffix = downSuffix
		default:
			continue
		}

		base := strings.TrimSuffix(name, suffix)
		version, migName, ok := splitBase(base)
		if !ok {
			return nil, fmt.Errorf("malformed migration filename: %s", name)
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: migName}
			byVersion[version] = m
		} else if m.Name != migName {
			return nil, fmt.Errorf("version %s has mismatched names: %s vs %s", version, m.Name, migName)
		}
		if suffix == upSuffix {
			m.UpSQL = content
		} else {
			m.DownSQL = content
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if len(m.UpSQL) == 0 {
			return nil, fmt.Errorf("version %s has a down file but no up file", m.Version)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *Runner) appliedVersions(ctx context.Context) (map[string]struct{}, error) {
	versions, err := r.appliedInOrder(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		applied[v] = struct{}{}
	}
	return applied, nil
}

func (r *Runner) appliedInOrder(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *Runner) appliedTimes(ctx context.Context) (map[string]time.Time, error) {
	rows, err := r.pool.Query(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := make(map[string]time.Time)
	for rows.Next() {
		var v string
		var at time.Time
		if err := rows.Scan(&v, &at); err != nil {
			return nil, err
		}
		times[v] = at
	}
	return times, rows.Err()
}

func (r *Runner) applyUp(ctx context.Context, m Migration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(m.UpSQL)); err != nil {
		return fmt.Errorf("execute up sql: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		m.Version, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *Runner) applyDown(ctx context.Context, m Migration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(m.DownSQL)); err != nil {
		return fmt.Errorf("execute down sql: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM schema_migrations WHERE version = $1`, m.Version,
	); err != nil {
		return fmt.Errorf("unrecord migration: %w", err)
	}
	return tx.Commit(ctx)
}

// resolveTarget normalizes a user-supplied version and checks it exists.
// Bare integers are zero-padded so "3" matches "000003".
func resolveTarget(available []Migration, target string) (string, error) {
	if target == "" {
		return "", nil
	}
	if n, err := strconv.Atoi(target); err == nil {
		target = fmt.Sprintf("%06d", n)
	}
	for _, m := range available {
		if m.Version == target {
			return target, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownVersion, target)
}

func splitBase(base string) (version, name string, ok bool) {
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	for _, c := range parts[0] {
		if c < '0' || c > '9' {
			return "", "", false
		}
	}
	return parts[0], parts[1], true
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(message string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(message), "_")
	return strings.Trim(slug, "_")
}

func nextVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}

	next := 1
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) != 2 {
			continue
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return next, nil
}
