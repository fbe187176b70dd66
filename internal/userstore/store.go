package userstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("userstore: user not found")

// User is a flat record: profile plus the remote credentials and the linked
// Drive folder. Records are read and written wholesale on each mutation.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	GetCourseAccount string `json:"getcourse_account"`
	GetCourseAPIKey  string `json:"getcourse_api_key"`
	DriveFolderID    string `json:"drive_folder_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the persistence contract for user records.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}
