package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Conditions is an ordered list of WHERE predicates, each carrying its own
// arguments. Predicates use '?' placeholders; numbering is left to the
// driver dialect, so indexes cannot drift and values never reach SQL text.
type Conditions struct {
	preds []predicate
}

type predicate struct {
	sql  string
	args []interface{}
}

// NewConditions returns an empty condition list.
func NewConditions() *Conditions {
	return &Conditions{}
}

// Add appends a predicate. It panics when the placeholder count does not
// match len(args); that is a programming error, not an input error.
func (c *Conditions) Add(sql string, args ...interface{}) *Conditions {
	if n := strings.Count(sql, "?"); n != len(args) {
		panic(fmt.Sprintf("repository: predicate %q has %d placeholders but %d args", sql, n, len(args)))
	}
	c.preds = append(c.preds, predicate{sql: sql, args: args})
	return c
}

// AddIf appends the predicate only when ok is true.
func (c *Conditions) AddIf(ok bool, sql string, args ...interface{}) *Conditions {
	if ok {
		return c.Add(sql, args...)
	}
	return c
}

// Len is the number of predicates.
func (c *Conditions) Len() int {
	return len(c.preds)
}

// SQL renders the predicates joined with AND, in insertion order.
func (c *Conditions) SQL() (string, []interface{}) {
	if len(c.preds) == 0 {
		return "", nil
	}
	parts := make([]string, len(c.preds))
	var args []interface{}
	for i, p := range c.preds {
		parts[i] = "(" + p.sql + ")"
		args = append(args, p.args...)
	}
	return strings.Join(parts, " AND "), args
}

// Scope applies every predicate to a gorm query.
func (c *Conditions) Scope(db *gorm.DB) *gorm.DB {
	for _, p := range c.preds {
		db = db.Where("("+p.sql+")", p.args...)
	}
	return db
}

// likePattern wraps s for a substring ILIKE, escaping LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// paginate applies limit/offset; a non-positive limit means no limit.
func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
