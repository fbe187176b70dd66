package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                 TEXT PRIMARY KEY,
	email              TEXT NOT NULL UNIQUE,
	name               TEXT NOT NULL DEFAULT '',
	getcourse_account  TEXT NOT NULL DEFAULT '',
	getcourse_api_key  TEXT NOT NULL DEFAULT '',
	drive_folder_id    TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP NOT NULL
);
`

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the user database at the given path and applies
// the schema.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("userstore: open %s: %w", path, err)
	}
	// WAL keeps concurrent reads cheap.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("userstore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, getcourse_account, getcourse_api_key, drive_folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.GetCourseAccount, u.GetCourseAPIKey, u.DriveFolderID, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return User{}, fmt.Errorf("userstore: create: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, selectUsers+" WHERE id = ?", id))
}

func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, selectUsers+" WHERE email = ?", email))
}

func (s *SQLiteStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, selectUsers+" ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("userstore: list: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the whole record; only CreatedAt is preserved server-side.
func (s *SQLiteStore) Update(ctx context.Context, u User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, name = ?, getcourse_account = ?, getcourse_api_key = ?, drive_folder_id = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, u.Name, u.GetCourseAccount, u.GetCourseAPIKey, u.DriveFolderID, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("userstore: update: %w", err)
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

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("userstore: delete: %w", err)
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

const selectUsers = `
	SELECT id, email, name, getcourse_account, getcourse_api_key, drive_folder_id, created_at, updated_at
	FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanOne(row *sql.Row) (User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func scanUser(r rowScanner) (User, error) {
	var u User
	err := r.Scan(&u.ID, &u.Email, &u.Name, &u.GetCourseAccount, &u.GetCourseAPIKey, &u.DriveFolderID, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
