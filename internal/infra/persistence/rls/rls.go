// Package rls enforces the ownership policy inside GORM.
//
// The plugin hooks every query, row, update, delete and create callback and
// rewrites the statement for the caller found in the statement context:
// reads and writes are narrowed to owned rows, inserts are checked row by
// row, and owner columns cannot be reassigned by an update.
package rls

import (
	"reflect"

	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const pluginName = "agromart:ownership"

const throughOrderSQL = "EXISTS (SELECT 1 FROM orders WHERE orders.id = order_items.order_id AND orders.seller_id = ?)"

// Plugin is a gorm.Plugin applying policy.Evaluator decisions as SQL.
type Plugin struct {
	evaluator *policy.Evaluator
}

// New creates the plugin.
func New(evaluator *policy.Evaluator) *Plugin {
	return &Plugin{evaluator: evaluator}
}

// Name implements gorm.Plugin.
func (p *Plugin) Name() string {
	return pluginName
}

// Initialize implements gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	callbacks := db.Callback()

	if err := callbacks.Query().Before("gorm:query").Register(pluginName+":query", p.filter(policy.ActionSelect)); err != nil {
		return errors.Wrap(err, "failed to register query callback")
	}
	if err := callbacks.Row().Before("gorm:row").Register(pluginName+":row", p.filter(policy.ActionSelect)); err != nil {
		return errors.Wrap(err, "failed to register row callback")
	}
	if err := callbacks.Update().Before("gorm:update").Register(pluginName+":update", p.filter(policy.ActionUpdate)); err != nil {
		return errors.Wrap(err, "failed to register update callback")
	}
	if err := callbacks.Delete().Before("gorm:delete").Register(pluginName+":delete", p.filter(policy.ActionDelete)); err != nil {
		return errors.Wrap(err, "failed to register delete callback")
	}
	if err := callbacks.Create().Before("gorm:create").Register(pluginName+":create", p.authorizeCreate); err != nil {
		return errors.Wrap(err, "failed to register create callback")
	}
	if err := callbacks.Raw().Before("gorm:raw").Register(pluginName+":raw", requireService); err != nil {
		return errors.Wrap(err, "failed to register raw callback")
	}

	return nil
}

func (p *Plugin) filter(action policy.Action) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error != nil {
			return
		}
		stmt := db.Statement
		if policy.IsService(stmt.Context) {
			return
		}
		// Prebuilt SQL cannot be narrowed.
		if stmt.Schema == nil || stmt.SQL.Len() > 0 {
			_ = db.AddError(domainerrors.ErrForbidden.WrapMessage("raw statements require the service role"))

			return
		}

		scope := p.evaluator.Scope(stmt.Context, policy.Table(stmt.Table), action)
		switch scope.Kind {
		case policy.ScopeBypass, policy.ScopeAnyAuthenticated:
		case policy.ScopeOwner:
			addWhere(stmt, clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: scope.Column},
				Value:  scope.ProfileID,
			})
			if action == policy.ActionUpdate {
				stmt.Omits = append(stmt.Omits, scope.Column)
			}
		case policy.ScopeOwnerThroughOrder:
			addWhere(stmt, clause.Expr{SQL: throughOrderSQL, Vars: []any{scope.ProfileID}})
		default:
			if action == policy.ActionSelect {
				addWhere(stmt, clause.Expr{SQL: "1 = 0"})

				return
			}
			_ = db.AddError(domainerrors.ErrForbidden.WrapMessage(string(action) + " on " + stmt.Table + " denied"))
		}
	}
}

func requireService(db *gorm.DB) {
	if db.Error == nil && !policy.IsService(db.Statement.Context) {
		_ = db.AddError(domainerrors.ErrForbidden.WrapMessage("raw statements require the service role"))
	}
}

func (p *Plugin) authorizeCreate(db *gorm.DB) {
	if db.Error != nil {
		return
	}
	stmt := db.Statement
	if policy.IsService(stmt.Context) {
		return
	}
	table := policy.Table(stmt.Table)
	if stmt.Schema == nil {
		_ = db.AddError(domainerrors.ErrForbidden.WrapMessage("raw statements require the service role"))

		return
	}

	scope := p.evaluator.Scope(stmt.Context, table, policy.ActionInsert)
	switch scope.Kind {
	case policy.ScopeBypass, policy.ScopeAnyAuthenticated:
		return
	case policy.ScopeOwner:
	default:
		_ = db.AddError(p.evaluator.Authorize(stmt.Context, table, policy.ActionInsert, uuid.Nil))

		return
	}

	field := stmt.Schema.LookUpField(scope.Column)
	if field == nil {
		_ = db.AddError(domainerrors.ErrForbidden.WrapMessage("owner column missing on " + stmt.Table))

		return
	}

	rv := stmt.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := p.authorizeRow(db, field, reflect.Indirect(rv.Index(i)), table); err != nil {
				_ = db.AddError(err)

				return
			}
		}
	case reflect.Struct:
		if err := p.authorizeRow(db, field, rv, table); err != nil {
			_ = db.AddError(err)
		}
	default:
		_ = db.AddError(domainerrors.ErrForbidden.WrapMessage("unsupported insert value for " + stmt.Table))
	}
}

func (p *Plugin) authorizeRow(db *gorm.DB, field *schema.Field, row reflect.Value, table policy.Table) error {
	value, _ := field.ValueOf(db.Statement.Context, row)
	ownerID, ok := ownerValue(value)
	if !ok {
		return domainerrors.ErrForbidden.WrapMessage("insert on " + string(table) + " has no owner")
	}

	return p.evaluator.Authorize(db.Statement.Context, table, policy.ActionInsert, ownerID)
}

func ownerValue(value any) (uuid.UUID, bool) {
	switch id := value.(type) {
	case uuid.UUID:
		return id, true
	case *uuid.UUID:
		if id != nil {
			return *id, true
		}
	}

	return uuid.Nil, false
}

// addWhere ANDs expr with the existing conditions, grouping them first so an
// OR in the caller's query cannot escape the filter.
func addWhere(stmt *gorm.Statement, expr clause.Expression) {
	if c, ok := stmt.Clauses["WHERE"]; ok {
		if where, ok := c.Expression.(clause.Where); ok && len(where.Exprs) > 0 {
			where.Exprs = []clause.Expression{clause.And(where.Exprs...), expr}
			c.Expression = where
			stmt.Clauses["WHERE"] = c

			return
		}
	}
	stmt.AddClause(clause.Where{Exprs: []clause.Expression{expr}})
}
