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

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler serves the caller's inbox.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// ListNotifications returns the caller's notifications, newest first.
// Query: unread, limit.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	unread, err := queryBool(c, "unread")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	notifications, err := h.notificationUC.ListNotifications(c.Request().Context(), profileID, unread != nil && *unread, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications)
}

// MarkRead flags one notification as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "無效的通知編號")
	}

	if err := h.notificationUC.MarkRead(c.Request().Context(), notificationID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flags every unread notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "憑證中的帳戶編號無效")
	}

	updated, err := h.notificationUC.MarkAllRead(c.Request().Context(), profileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"updated": updated})
}
