// Package handler holds the worker's Pub/Sub push handler.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"agromart/config"
	deliverycontext "agromart/internal/delivery/context"
	"agromart/internal/domain/constants"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"
	"agromart/internal/infra/pubsub"
	"agromart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// errMalformedEvent marks events that can never be processed.
var errMalformedEvent = errors.New("malformed event")

// tokenValidator checks a Google-signed OIDC token for audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler applies domain events delivered by a Pub/Sub push subscription.
type PushHandler struct {
	verifyPushAuth bool
	validateToken  tokenValidator
	logger         *slog.Logger
	provisioningUC usecase.ProvisioningUsecase
	notificationUC usecase.NotificationUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	ProvisioningUC usecase.ProvisioningUsecase
	NotificationUC usecase.NotificationUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google signs push requests; the local publisher does not.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		provisioningUC: params.ProvisioningUC,
		notificationUC: params.NotificationUC,
	}
}

// HandlePush acknowledges an event with 200 once it is applied or can never
// be applied, and answers 503 so Pub/Sub redelivers after transient failures.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := pushMsg.DecodeEvent()
	if err != nil {
		h.logger.Error("[Worker] Failed to decode domain event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.Type),
	)
	ctx = deliverycontext.WithRequest(ctx, requestID, reqLogger)
	// Workers act for the platform, never for an end user.
	ctx = policy.AsService(ctx)

	reqLogger.Info("[Worker] Processing event")

	if err := h.dispatch(ctx, event); err != nil {
		retryable := isRetryable(err)
		reqLogger.Error("[Worker] Failed to process event",
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Event processed")

	return c.NoContent(http.StatusOK)
}

func (h *PushHandler) dispatch(ctx context.Context, event *service.DomainEvent) error {
	switch event.Type {
	case service.EventTypeIdentityCreated:
		return h.handleIdentityCreated(ctx, event.IdentityCreated)
	case service.EventTypeOrderPlaced:
		return h.handleOrderPlaced(ctx, event.OrderPlaced)
	default:
		deliverycontext.LoggerOr(ctx, h.logger).Warn("[Worker] Ignoring unknown event type")

		return nil
	}
}

func (h *PushHandler) handleIdentityCreated(ctx context.Context, payload *service.IdentityCreatedEvent) error {
	if payload == nil {
		return errors.Wrap(errMalformedEvent, "identity.created without payload")
	}

	identityID, err := uuid.Parse(payload.IdentityID)
	if err != nil {
		return errors.Wrapf(errMalformedEvent, "invalid identity id %q", payload.IdentityID)
	}

	_, err = h.provisioningUC.ProvisionProfile(ctx, usecase.IdentityCreatedInput{
		ID:           identityID,
		Email:        payload.Email,
		FullName:     payload.FullName,
		BusinessName: payload.BusinessName,
		BusinessType: payload.BusinessType,
		Phone:        payload.Phone,
	})

	return err
}

func (h *PushHandler) handleOrderPlaced(ctx context.Context, payload *service.OrderPlacedEvent) error {
	if payload == nil {
		return errors.Wrap(errMalformedEvent, "order.placed without payload")
	}

	_, err := h.notificationUC.NotifyOrderPlaced(ctx, payload)

	return err
}

// isRetryable treats client-side domain errors and malformed events as permanent.
func isRetryable(err error) bool {
	if errors.Is(err, errMalformedEvent) {
		return false
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode() >= http.StatusInternalServerError
	}

	return true
}

// extractRequestID prefers message attributes, then the event, then the inbound request.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.DomainEvent) string {
	if requestID := pushMsg.Message.Attributes[pubsub.AttrRequestID]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.RequestIDFrom(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the OIDC token Google attaches to push requests.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the push endpoint URL.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
