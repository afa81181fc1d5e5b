package handler

import (
	"log/slog"
	"net/http"

	"agromart/internal/delivery/api/middleware"
	"agromart/internal/delivery/api/response"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TodoHandlerParams holds dependencies for TodoHandler, injected by Fx.
type TodoHandlerParams struct {
	fx.In

	TodoUC usecase.TodoUsecase
	Logger *slog.Logger
}

// TodoHandler serves the caller's task list.
type TodoHandler struct {
	todoUC usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler
func NewTodoHandler(params TodoHandlerParams) *TodoHandler {
	return &TodoHandler{
		todoUC: params.TodoUC,
		logger: params.Logger,
	}
}

// CreateTodo adds a task
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	var req usecase.CreateTodoInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的待辦資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	todo, err := h.todoUC.CreateTodo(c.Request().Context(), profileID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, todo)
}

// ListTodos returns the caller's tasks. Query: completed.
func (h *TodoHandler) ListTodos(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	completed, err := queryBool(c, "completed")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	todos, err := h.todoUC.ListTodos(c.Request().Context(), profileID, completed)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, todos)
}

// UpdateTodo changes the given fields of a task
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的待辦編號")
	}

	var req usecase.UpdateTodoInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的待辦資料")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	todo, err := h.todoUC.UpdateTodo(c.Request().Context(), todoID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, todo)
}

// DeleteTodo removes a task
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的待辦編號")
	}

	if err := h.todoUC.DeleteTodo(c.Request().Context(), todoID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
