package policy

import (
	"context"

	domainerrors "agromart/internal/domain/errors"

	"github.com/google/uuid"
)

// Table names a protected table.
type Table string

const (
	TableProfiles      Table = "profiles"
	TableAddresses     Table = "addresses"
	TableProducts      Table = "products"
	TableOrders        Table = "orders"
	TableOrderItems    Table = "order_items"
	TableTodos         Table = "todos"
	TableSellerMetrics Table = "seller_metrics"
	TableDailySales    Table = "daily_sales"
	TableNotifications Table = "notifications"
	TableSellerTips    Table = "seller_tips"
)

// Action is the kind of data access being checked.
type Action string

const (
	ActionSelect Action = "select"
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Rule grants one action on one table to authenticated callers.
type Rule struct {
	// OwnerColumn must equal the caller's profile ID.
	OwnerColumn string
	// ThroughOrder grants access when the caller owns the parent order.
	ThroughOrder bool
	// AnyAuthenticated grants access to every authenticated caller.
	AnyAuthenticated bool
}

// ScopeKind is the shape of the row filter a caller receives.
type ScopeKind int

const (
	// ScopeDenyAll hides every row and rejects every write.
	ScopeDenyAll ScopeKind = iota
	// ScopeBypass applies no filter.
	ScopeBypass
	// ScopeAnyAuthenticated applies no filter for an authenticated caller.
	ScopeAnyAuthenticated
	// ScopeOwner restricts rows to Column = ProfileID.
	ScopeOwner
	// ScopeOwnerThroughOrder restricts rows to those whose parent order has seller_id = ProfileID.
	ScopeOwnerThroughOrder
)

// Scope is the filter to apply for one caller, table and action.
type Scope struct {
	Kind      ScopeKind
	Column    string
	ProfileID uuid.UUID
}

// Evaluator resolves rules for callers.
type Evaluator struct {
	rules map[Table]map[Action]Rule
}

// NewEvaluator returns an Evaluator loaded with the marketplace rules.
func NewEvaluator() *Evaluator {
	return NewEvaluatorWithRules(DefaultRules())
}

// NewEvaluatorWithRules returns an Evaluator for an explicit rule set.
func NewEvaluatorWithRules(rules map[Table]map[Action]Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// DefaultRules returns the marketplace ownership rules. An action missing
// from a table's rules is reserved for the service role.
func DefaultRules() map[Table]map[Action]Rule {
	owner := func(column string, actions ...Action) map[Action]Rule {
		rules := make(map[Action]Rule, len(actions))
		for _, action := range actions {
			rules[action] = Rule{OwnerColumn: column}
		}

		return rules
	}

	return map[Table]map[Action]Rule{
		TableProfiles:      owner("id", ActionSelect, ActionUpdate),
		TableAddresses:     owner("profile_id", ActionSelect, ActionInsert, ActionUpdate, ActionDelete),
		TableProducts:      owner("seller_id", ActionSelect, ActionInsert, ActionUpdate, ActionDelete),
		TableOrders:        owner("seller_id", ActionSelect, ActionUpdate),
		TableOrderItems:    {ActionSelect: {ThroughOrder: true}},
		TableTodos:         owner("profile_id", ActionSelect, ActionInsert, ActionUpdate, ActionDelete),
		TableSellerMetrics: owner("profile_id", ActionSelect),
		TableDailySales:    owner("profile_id", ActionSelect),
		TableNotifications: owner("profile_id", ActionSelect, ActionUpdate),
		TableSellerTips:    {ActionSelect: {AnyAuthenticated: true}},
	}
}

// Scope returns the row filter for the caller in ctx.
func (e *Evaluator) Scope(ctx context.Context, table Table, action Action) Scope {
	caller, ok := CallerFrom(ctx)
	if !ok {
		return Scope{Kind: ScopeDenyAll}
	}
	if caller.Role == RoleService {
		return Scope{Kind: ScopeBypass}
	}
	if caller.Role != RoleAuthenticated || caller.ProfileID == uuid.Nil {
		return Scope{Kind: ScopeDenyAll}
	}

	rule, ok := e.rules[table][action]
	if !ok {
		return Scope{Kind: ScopeDenyAll}
	}

	switch {
	case rule.AnyAuthenticated:
		return Scope{Kind: ScopeAnyAuthenticated}
	case rule.ThroughOrder:
		return Scope{Kind: ScopeOwnerThroughOrder, ProfileID: caller.ProfileID}
	case rule.OwnerColumn != "":
		return Scope{Kind: ScopeOwner, Column: rule.OwnerColumn, ProfileID: caller.ProfileID}
	default:
		return Scope{Kind: ScopeDenyAll}
	}
}

// Authorize checks a single row whose owning profile is ownerID.
// It returns ErrForbidden when the caller may not perform action on it.
func (e *Evaluator) Authorize(ctx context.Context, table Table, action Action, ownerID uuid.UUID) error {
	scope := e.Scope(ctx, table, action)
	switch scope.Kind {
	case ScopeBypass, ScopeAnyAuthenticated:
		return nil
	case ScopeOwner, ScopeOwnerThroughOrder:
		if ownerID != uuid.Nil && ownerID == scope.ProfileID {
			return nil
		}
	}

	return domainerrors.ErrForbidden.WrapMessage(string(action) + " on " + string(table) + " denied")
}
