package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/repository"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.TodoUsecase {
	return &todoService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *todoService) CreateTodo(ctx context.Context, profileID uuid.UUID, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title is required")
	}

	now := time.Now().UTC()
	todo := &entity.Todo{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TodoRepo().Create(ctx, todo)
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create todo")
	}

	return todo, nil
}

func (srv *todoService) ListTodos(ctx context.Context, profileID uuid.UUID, completed *bool) ([]*entity.Todo, error) {
	var todos []*entity.Todo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TodoRepo().List(ctx, profileID, completed)
		if err != nil {
			return err
		}
		todos = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	return todos, nil
}

func (srv *todoService) UpdateTodo(ctx context.Context, todoID uuid.UUID, input *usecase.UpdateTodoInput) (*entity.Todo, error) {
	var todo *entity.Todo

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		todoRepo := repoFactory.TodoRepo()

		found, err := todoRepo.FindByID(ctx, todoID)
		if err != nil {
			return translateRepoError(err, repository.ErrTodoNotFound, domainerrors.ErrTodoNotFound, "failed to find todo")
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return errors.Wrap(domainerrors.ErrValidationFailed, "title is required")
			}
			found.Title = title
		}
		if input.Description != nil {
			found.Description = *input.Description
		}
		if input.Completed != nil {
			found.Completed = *input.Completed
		}
		if input.DueDate != nil {
			found.DueDate = input.DueDate
		}
		found.UpdatedAt = time.Now().UTC()

		if err := todoRepo.Update(ctx, found); err != nil {
			return translateRepoError(err, repository.ErrTodoNotFound, domainerrors.ErrTodoNotFound, "failed to update todo")
		}
		todo = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update todo")
	}

	return todo, nil
}

func (srv *todoService) DeleteTodo(ctx context.Context, todoID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.TodoRepo().Delete(ctx, todoID); err != nil {
			return translateRepoError(err, repository.ErrTodoNotFound, domainerrors.ErrTodoNotFound, "failed to delete todo")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to delete todo")
	}

	return nil
}
