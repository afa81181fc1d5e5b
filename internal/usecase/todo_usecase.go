package usecase

import (
	"context"
	"time"

	"agromart/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTodoInput defines a new todo.
type CreateTodoInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTodoInput holds the todo fields to change. Nil fields are left untouched.
type UpdateTodoInput struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TodoUsecase manages a seller's own task list.
type TodoUsecase interface {
	CreateTodo(ctx context.Context, profileID uuid.UUID, input *CreateTodoInput) (*entity.Todo, error)
	ListTodos(ctx context.Context, profileID uuid.UUID, completed *bool) ([]*entity.Todo, error)
	UpdateTodo(ctx context.Context, todoID uuid.UUID, input *UpdateTodoInput) (*entity.Todo, error)
	DeleteTodo(ctx context.Context, todoID uuid.UUID) error
}
