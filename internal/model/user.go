package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int64) error
}

// User represents a registered user row.
type User struct {
	ID         int64     `json:"id"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	Email      string    `json:"email"`
	DateBirth  Date      `json:"dateBirth"`
	PostalCode string    `json:"postalCode"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"-"`
}
