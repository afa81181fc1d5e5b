package impl

import (
	"testing"
	"time"

	"agromart/internal/domain/entity"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_OrderPlacedFlow(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)
	_, otherCtx := f.seller(t)

	first := f.placeOrder(t, sellerID, "12.5", time.Now().UTC())
	second := f.placeOrder(t, sellerID, "8", time.Now().UTC())

	created, err := f.notify.NotifyOrderPlaced(serviceCtx, orderPlacedEvent(first))
	require.NoError(t, err)
	assert.Equal(t, entity.NotificationTypeOrderPlaced, created.Type)
	assert.Contains(t, created.Message, first.OrderNumber)
	assert.Contains(t, created.Message, "12.50")
	_, err = f.notify.NotifyOrderPlaced(serviceCtx, orderPlacedEvent(second))
	require.NoError(t, err)

	// Users cannot create notifications for themselves.
	_, err = f.notify.NotifyOrderPlaced(ctx, orderPlacedEvent(first))
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	unread, err := f.notify.ListNotifications(ctx, sellerID, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	assert.ErrorIs(t, f.notify.MarkRead(otherCtx, unread[0].ID), domainerrors.ErrNotificationNotFound)
	require.NoError(t, f.notify.MarkRead(ctx, unread[0].ID))

	unread, err = f.notify.ListNotifications(ctx, sellerID, true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	count, err := f.notify.MarkAllRead(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := f.notify.ListNotifications(ctx, sellerID, false, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotificationService_RejectsBadEvents(t *testing.T) {
	f := newServiceFixtures(t)

	_, err := f.notify.NotifyOrderPlaced(serviceCtx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.notify.NotifyOrderPlaced(serviceCtx, &service.OrderPlacedEvent{SellerID: "not-a-uuid"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
