package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/infra/pubsub"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type mockProvisioningUsecase struct {
	mock.Mock
}

func (m *mockProvisioningUsecase) ProvisionProfile(ctx context.Context, input usecase.IdentityCreatedInput) (*entity.Profile, error) {
	args := m.Called(ctx, input)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

type mockNotificationUsecase struct {
	mock.Mock
}

func (m *mockNotificationUsecase) ListNotifications(ctx context.Context, profileID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, profileID, unreadOnly, limit)
	notifications, _ := args.Get(0).([]*entity.Notification)

	return notifications, args.Error(1)
}

func (m *mockNotificationUsecase) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return m.Called(ctx, notificationID).Error(0)
}

func (m *mockNotificationUsecase) MarkAllRead(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationUsecase) NotifyOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) (*entity.Notification, error) {
	args := m.Called(ctx, event)
	notification, _ := args.Get(0).(*entity.Notification)

	return notification, args.Error(1)
}

var serviceRole = mock.MatchedBy(func(ctx context.Context) bool { return policy.IsService(ctx) })

func newTestPushHandler(t *testing.T) (*PushHandler, *mockProvisioningUsecase, *mockNotificationUsecase) {
	t.Helper()

	provisioning := &mockProvisioningUsecase{}
	notifications := &mockNotificationUsecase{}
	t.Cleanup(func() {
		provisioning.AssertExpectations(t)
		notifications.AssertExpectations(t)
	})

	return &PushHandler{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		provisioningUC: provisioning,
		notificationUC: notifications,
	}, provisioning, notifications
}

func push(t *testing.T, h *PushHandler, body []byte, header http.Header) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()

	require.NoError(t, h.HandlePush(e.NewContext(req, rec)))

	return rec.Code
}

func pushBody(t *testing.T, event *service.DomainEvent) []byte {
	t.Helper()

	msg, err := pubsub.NewPushMessage(event, "projects/test/subscriptions/worker", time.Now())
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func identityCreated(id string) *service.DomainEvent {
	return &service.DomainEvent{
		EventID: uuid.NewString(),
		Type:    service.EventTypeIdentityCreated,
		IdentityCreated: &service.IdentityCreatedEvent{
			IdentityID: id,
			Email:      "grower@farm.example",
			FullName:   "Mei Lin",
		},
	}
}

func TestHandlePush_IdentityCreated(t *testing.T) {
	h, provisioning, _ := newTestPushHandler(t)
	id := uuid.New()

	provisioning.On("ProvisionProfile", serviceRole, usecase.IdentityCreatedInput{
		ID:       id,
		Email:    "grower@farm.example",
		FullName: "Mei Lin",
	}).Return(&entity.Profile{ID: id}, nil).Once()

	assert.Equal(t, http.StatusOK, push(t, h, pushBody(t, identityCreated(id.String())), nil))
}

func TestHandlePush_RetryPolicy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate identity is acknowledged", errors.Wrap(domainerrors.ErrProfileAlreadyExists, "provision"), http.StatusOK},
		{"validation failure is acknowledged", domainerrors.ErrValidationFailed, http.StatusOK},
		{"server-side domain error is retried", domainerrors.ErrTransactionFailed, http.StatusServiceUnavailable},
		{"unknown error is retried", errors.New("connection reset"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, provisioning, _ := newTestPushHandler(t)
			provisioning.On("ProvisionProfile", serviceRole, mock.Anything).Return(nil, tt.err).Once()

			assert.Equal(t, tt.want, push(t, h, pushBody(t, identityCreated(uuid.NewString())), nil))
		})
	}
}

func TestHandlePush_OrderPlaced(t *testing.T) {
	h, _, notifications := newTestPushHandler(t)
	payload := &service.OrderPlacedEvent{
		OrderID:      uuid.NewString(),
		OrderNumber:  "ORD-20260314-0A1B2C3D",
		SellerID:     uuid.NewString(),
		CustomerName: "Buyer",
		TotalAmount:  decimal.RequireFromString("25.00"),
		PlacedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	notifications.On("NotifyOrderPlaced", serviceRole, mock.MatchedBy(func(e *service.OrderPlacedEvent) bool {
		return e.OrderID == payload.OrderID && e.TotalAmount.Equal(payload.TotalAmount)
	})).Return(&entity.Notification{}, nil).Once()

	event := &service.DomainEvent{EventID: uuid.NewString(), Type: service.EventTypeOrderPlaced, OrderPlaced: payload}
	assert.Equal(t, http.StatusOK, push(t, h, pushBody(t, event), nil))
}

func TestHandlePush_UnprocessableEvents(t *testing.T) {
	h, _, _ := newTestPushHandler(t)

	assert.Equal(t, http.StatusOK, push(t, h, pushBody(t, identityCreated("not-a-uuid")), nil))
	assert.Equal(t, http.StatusOK, push(t, h, pushBody(t, &service.DomainEvent{Type: service.EventTypeOrderPlaced}), nil))
	assert.Equal(t, http.StatusOK, push(t, h, pushBody(t, &service.DomainEvent{Type: "profile.deleted"}), nil))

	assert.Equal(t, http.StatusBadRequest, push(t, h, []byte(`{"message":{"data":"%%%"}}`), nil))
	assert.Equal(t, http.StatusBadRequest, push(t, h, []byte(`not json`), nil))
}

func TestHandlePush_VerifiesGoogleToken(t *testing.T) {
	h, provisioning, _ := newTestPushHandler(t)
	h.verifyPushAuth = true
	h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "http://example.com/push", audience)
		switch token {
		case "good":
			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		case "foreign":
			return &idtoken.Payload{Issuer: "https://evil.example"}, nil
		default:
			return nil, errors.New("bad signature")
		}
	}

	body := pushBody(t, identityCreated(uuid.NewString()))

	assert.Equal(t, http.StatusUnauthorized, push(t, h, body, nil))
	assert.Equal(t, http.StatusUnauthorized, push(t, h, body, http.Header{echo.HeaderAuthorization: {"Bearer forged"}}))
	assert.Equal(t, http.StatusUnauthorized, push(t, h, body, http.Header{echo.HeaderAuthorization: {"Bearer foreign"}}))

	provisioning.On("ProvisionProfile", serviceRole, mock.Anything).Return(&entity.Profile{}, nil).Once()
	assert.Equal(t, http.StatusOK, push(t, h, body, http.Header{echo.HeaderAuthorization: {"Bearer good"}}))
}
