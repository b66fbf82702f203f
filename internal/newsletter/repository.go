package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Subscribe(ctx context.Context, email string) (*Subscriber, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	s := &Subscriber{ID: uuid.New().String(), Email: email}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO newsletter_subscribers (id, email)
		VALUES ($1, $2)
		RETURNING created_at
	`, s.ID, s.Email).Scan(&s.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return nil, ErrAlreadySubscribed
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
