package postgres

import (
	"context"

	"agromart/internal/domain/entity"
	"agromart/internal/domain/repository"
	"agromart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// todoRepository implements the repository.TodoRepository interface.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(todoM).Error; err != nil {
		return translateWriteError(err, "failed to create todo")
	}

	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

func (repo *todoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&todoM).Error; err != nil {
		return nil, translateReadError(err, repository.ErrTodoNotFound, "failed to find todo by ID")
	}

	return toTodoDomain(&todoM), nil
}

// List returns open todos by due date, then the rest.
func (repo *todoRepository) List(ctx context.Context, profileID uuid.UUID, completed *bool) ([]*entity.Todo, error) {
	query := repo.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var todoModels []*model.TodoModel
	err := query.
		Order("completed ASC").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&todoModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	todos := make([]*entity.Todo, 0, len(todoModels))
	for _, todoM := range todoModels {
		todos = append(todos, toTodoDomain(todoM))
	}

	return todos, nil
}

func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ?", todo.ID).
		Updates(map[string]any{
			"title":       todo.Title,
			"description": todo.Description,
			"completed":   todo.Completed,
			"due_date":    todo.DueDate,
			"updated_at":  todo.UpdatedAt,
		})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to update todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

func (repo *todoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TodoModel{})
	if result.Error != nil {
		return translateWriteError(result.Error, "failed to delete todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		DueDate:     data.DueDate,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		DueDate:     data.DueDate,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
