package shopscope

import (
	"errors"
	"regexp"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnscopedStatement is added to statements on guarded tables that carry no
// shop condition.
var ErrUnscopedStatement = errors.New("shopscope: statement on shop-owned table has no shop condition")

const crossShopKey = "shopscope:cross_shop"

// CrossShop marks a statement as intentionally spanning shops, such as the
// sweeper listing every shop that owns badges.
func CrossShop(db *gorm.DB) *gorm.DB {
	return db.Set(crossShopKey, true)
}

// Guard is a set of gorm callbacks that refuse unscoped statements.
type Guard struct {
	tables map[string]struct{}
	column *regexp.Regexp
}

// NewGuard guards the given tables.
func NewGuard(tables ...string) *Guard {
	set := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}
	return &Guard{
		tables: set,
		column: regexp.MustCompile(`(?i)(^|[^a-z0-9_])"?` + regexp.QuoteMeta(Column) + `"?\s*(=|in\s*\()`),
	}
}

// Register installs the guard before gorm's query, row, update and delete
// callbacks.
func (g *Guard) Register(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Query().Before("gorm:query").Register("shopscope:query", g.check); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("shopscope:row", g.check); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("shopscope:update", g.check); err != nil {
		return err
	}
	return cb.Delete().Before("gorm:delete").Register("shopscope:delete", g.check)
}

func (g *Guard) check(db *gorm.DB) {
	if db.Error != nil || db.Statement.Table == "" {
		return
	}
	if _, guarded := g.tables[db.Statement.Table]; !guarded {
		return
	}
	if crossShop, ok := db.Get(crossShopKey); ok && crossShop == true {
		return
	}
	if !g.hasShopCondition(db.Statement) {
		_ = db.AddError(ErrUnscopedStatement)
	}
}

func (g *Guard) hasShopCondition(stmt *gorm.Statement) bool {
	c, ok := stmt.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if g.mentionsShop(expr) {
			return true
		}
	}
	return false
}

func (g *Guard) mentionsShop(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Expr:
		return g.column.MatchString(e.SQL)
	case clause.NamedExpr:
		return g.column.MatchString(e.SQL)
	case clause.Eq:
		return isShopColumn(e.Column)
	case clause.IN:
		return isShopColumn(e.Column)
	case clause.AndConditions:
		for _, sub := range e.Exprs {
			if g.mentionsShop(sub) {
				return true
			}
		}
	}
	return false
}

func isShopColumn(col interface{}) bool {
	switch c := col.(type) {
	case clause.Column:
		return c.Name == Column
	case string:
		return c == Column
	}
	return false
}
