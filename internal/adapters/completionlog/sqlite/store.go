package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/daily-activity-cli/internal/adapters/completionlog/watch"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 1 - completed_activities with a completed_at index
const currentSchemaVersion = 1

const (
	driverName = "sqlite"
	dbDirMode  = 0o700
)

type Options struct {
	// PollInterval lets Watch notice inserts made by other processes.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Store is the durable completion log. Timestamps are stored as Unix
// nanoseconds and read back in the local timezone.
type Store struct {
	db   *sql.DB
	hub  *watch.Hub
	opts Options
}

var _ ports.CompletionLog = (*Store)(nil)

// Open creates or opens the database at path and applies migrations.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, errors.New("completion log path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dbDirMode); err != nil {
			return nil, fmt.Errorf("create completion log directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open completion log: %w", err)
	}

	// one connection serializes writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect completion log: %w", err)
	}

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, hub: watch.NewHub(), opts: opts}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Insert(ctx context.Context, description string, at time.Time) (domain.CompletedActivity, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompletedActivity{}, err
	}
	if description == "" {
		return domain.CompletedActivity{}, domain.ErrEmptyDescription
	}

	activity := domain.CompletedActivity{
		ID:          domain.CompletedActivityID(uuid.NewString()),
		Description: description,
		Timestamp:   time.Unix(0, at.UnixNano()),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completed_activities (id, description, completed_at) VALUES (?, ?, ?)`,
		string(activity.ID), activity.Description, activity.Timestamp.UnixNano(),
	)
	if err != nil {
		return domain.CompletedActivity{}, fmt.Errorf("insert completion: %w", err)
	}

	s.hub.Notify()
	return activity, nil
}

func (s *Store) List(ctx context.Context) ([]domain.CompletedActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, completed_at FROM completed_activities ORDER BY completed_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	history := []domain.CompletedActivity{}
	for rows.Next() {
		var (
			id          string
			description string
			completedAt int64
		)
		if err := rows.Scan(&id, &description, &completedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		history = append(history, domain.CompletedActivity{
			ID:          domain.CompletedActivityID(id),
			Description: description,
			Timestamp:   time.Unix(0, completedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completions: %w", err)
	}

	return history, nil
}

// CountOnDay counts entries in [local midnight, next local midnight).
func (s *Store) CountOnDay(ctx context.Context, day domain.CalendarDay) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start, end, err := day.Bounds(time.Local)
	if err != nil {
		return 0, fmt.Errorf("resolve day bounds: %w", err)
	}

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completed_activities WHERE completed_at >= ? AND completed_at < ?`,
		start.UnixNano(), end.UnixNano(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}

	return count, nil
}

func (s *Store) Watch(ctx context.Context) (<-chan []domain.CompletedActivity, error) {
	return watch.Stream(ctx, s.hub, s.List, watch.StreamOptions{
		PollInterval: s.opts.PollInterval,
		Logger:       s.opts.Logger,
	})
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported completion log schema version %d (current %d)", version, currentSchemaVersion)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply completion log schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}

	return nil
}
