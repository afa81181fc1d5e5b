package policy

import (
	"context"
	"testing"

	domainerrors "agromart/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Scope(t *testing.T) {
	evaluator := NewEvaluator()
	sellerID := uuid.New()
	seller := WithProfile(context.Background(), sellerID)

	tests := []struct {
		name   string
		ctx    context.Context
		table  Table
		action Action
		want   Scope
	}{
		{"anonymous is denied", context.Background(), TableProducts, ActionSelect, Scope{Kind: ScopeDenyAll}},
		{"service bypasses", AsService(context.Background()), TableOrders, ActionInsert, Scope{Kind: ScopeBypass}},
		{"seller reads own products", seller, TableProducts, ActionSelect, Scope{Kind: ScopeOwner, Column: "seller_id", ProfileID: sellerID}},
		{"profile is keyed by id", seller, TableProfiles, ActionUpdate, Scope{Kind: ScopeOwner, Column: "id", ProfileID: sellerID}},
		{"order items go through the order", seller, TableOrderItems, ActionSelect, Scope{Kind: ScopeOwnerThroughOrder, ProfileID: sellerID}},
		{"tips are public to signed-in users", seller, TableSellerTips, ActionSelect, Scope{Kind: ScopeAnyAuthenticated}},
		{"orders cannot be inserted by sellers", seller, TableOrders, ActionInsert, Scope{Kind: ScopeDenyAll}},
		{"orders cannot be deleted by sellers", seller, TableOrders, ActionDelete, Scope{Kind: ScopeDenyAll}},
		{"seller reads own metrics", seller, TableSellerMetrics, ActionSelect, Scope{Kind: ScopeOwner, Column: "profile_id", ProfileID: sellerID}},
		{"seller reads own daily sales", seller, TableDailySales, ActionSelect, Scope{Kind: ScopeOwner, Column: "profile_id", ProfileID: sellerID}},
		{"seller reads own todos", seller, TableTodos, ActionSelect, Scope{Kind: ScopeOwner, Column: "profile_id", ProfileID: sellerID}},
		{"metrics are read only", seller, TableSellerMetrics, ActionUpdate, Scope{Kind: ScopeDenyAll}},
		{"daily sales are read only", seller, TableDailySales, ActionInsert, Scope{Kind: ScopeDenyAll}},
		{"notifications are not inserted by users", seller, TableNotifications, ActionInsert, Scope{Kind: ScopeDenyAll}},
		{"profiles cannot be deleted by users", seller, TableProfiles, ActionDelete, Scope{Kind: ScopeDenyAll}},
		{"unknown table is denied", seller, Table("audit_log"), ActionSelect, Scope{Kind: ScopeDenyAll}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluator.Scope(tt.ctx, tt.table, tt.action))
		})
	}
}

func TestEvaluator_ScopeRejectsNilProfile(t *testing.T) {
	evaluator := NewEvaluator()
	ctx := WithCaller(context.Background(), Caller{Role: RoleAuthenticated})

	assert.Equal(t, ScopeDenyAll, evaluator.Scope(ctx, TableTodos, ActionSelect).Kind)
}

func TestEvaluator_Authorize(t *testing.T) {
	evaluator := NewEvaluator()
	owner := uuid.New()
	other := uuid.New()
	ctx := WithProfile(context.Background(), owner)

	require.NoError(t, evaluator.Authorize(ctx, TableTodos, ActionInsert, owner))
	require.NoError(t, evaluator.Authorize(AsService(context.Background()), TableOrders, ActionInsert, other))

	err := evaluator.Authorize(ctx, TableTodos, ActionInsert, other)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = evaluator.Authorize(ctx, TableOrders, ActionInsert, owner)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCallerFrom(t *testing.T) {
	_, ok := CallerFrom(context.Background())
	assert.False(t, ok)

	ctx := AsService(context.Background())
	caller, ok := CallerFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, RoleService, caller.Role)
	assert.True(t, IsService(ctx))
	assert.False(t, IsService(WithProfile(ctx, uuid.New())))
}
