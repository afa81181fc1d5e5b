package repository

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/errors"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when a todo is missing or hidden from the caller.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines todo persistence.
type TodoRepository interface {
	Create(ctx context.Context, todo *entity.Todo) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error)
	// List returns the profile's todos, optionally filtered by completion.
	List(ctx context.Context, profileID uuid.UUID, completed *bool) ([]*entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
}
