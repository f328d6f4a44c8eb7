package database

import (
	"fmt"
	"strings"
)

// Expr is a typed filter expression. Building filters from these instead
// of format strings keeps invalid predicates out of the SQL layer.
type Expr interface {
	build(sb *strings.Builder, args *[]any)
}

type binary struct {
	col string
	op  string
	val any
}

func (b binary) build(sb *strings.Builder, args *[]any) {
	sb.WriteString(b.col)
	sb.WriteString(" ")
	sb.WriteString(b.op)
	sb.WriteString(" ?")
	*args = append(*args, b.val)
}

// Eq matches col = val.
func Eq(col string, val any) Expr { return binary{col, "=", val} }

// Ne matches col <> val.
func Ne(col string, val any) Expr { return binary{col, "<>", val} }

// Gte matches col >= val.
func Gte(col string, val any) Expr { return binary{col, ">=", val} }

// Lt matches col < val. Gte+Lt together express the half-open windows
// the date-scoped queries use.
func Lt(col string, val any) Expr { return binary{col, "<", val} }

type contains struct {
	col    string
	substr string
}

func (c contains) build(sb *strings.Builder, args *[]any) {
	sb.WriteString("LOWER(")
	sb.WriteString(c.col)
	sb.WriteString(") LIKE '%' || LOWER(?) || '%'")
	*args = append(*args, c.substr)
}

// Contains matches a case-insensitive substring.
func Contains(col, substr string) Expr { return contains{col, substr} }

type membership struct {
	col  string
	vals []any
}

func (m membership) build(sb *strings.Builder, args *[]any) {
	sb.WriteString(m.col)
	sb.WriteString(" IN (")
	for i, v := range m.vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		*args = append(*args, v)
	}
	sb.WriteString(")")
}

// In matches set membership. An empty set matches nothing.
func In(col string, vals ...any) Expr {
	if len(vals) == 0 {
		return Raw("1 = 0")
	}
	return membership{col, vals}
}

type null struct {
	col string
	not bool
}

func (n null) build(sb *strings.Builder, args *[]any) {
	sb.WriteString(n.col)
	if n.not {
		sb.WriteString(" IS NOT NULL")
	} else {
		sb.WriteString(" IS NULL")
	}
}

// IsNull matches absent values.
func IsNull(col string) Expr { return null{col, false} }

// NotNull matches present values.
func NotNull(col string) Expr { return null{col, true} }

type compound struct {
	op    string
	exprs []Expr
}

func (c compound) build(sb *strings.Builder, args *[]any) {
	sb.WriteString("(")
	for i, e := range c.exprs {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(c.op)
			sb.WriteString(" ")
		}
		e.build(sb, args)
	}
	sb.WriteString(")")
}

// And combines expressions conjunctively.
func And(exprs ...Expr) Expr { return compound{"AND", exprs} }

// Or combines expressions disjunctively.
func Or(exprs ...Expr) Expr { return compound{"OR", exprs} }

type raw string

func (r raw) build(sb *strings.Builder, _ *[]any) {
	sb.WriteString(string(r))
}

// Raw is an escape hatch for fragments the builder has no leaf for,
// such as COALESCE comparisons.
func Raw(fragment string) Expr { return raw(fragment) }

// Sort orders one key; multiple sorts apply left to right.
type Sort struct {
	Col  string
	Desc bool
}

func Asc(col string) Sort  { return Sort{Col: col} }
func Desc(col string) Sort { return Sort{Col: col, Desc: true} }

// Query describes one select against the store: table, filter, sort,
// optional limit and distinct.
type Query struct {
	Table    string
	Columns  []string
	Joins    []string
	Where    Expr
	Order    []Sort
	Limit    int
	Distinct bool
}

// SQL compiles the query to a statement and argument list.
func (q Query) SQL() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.Table)

	for _, j := range q.Joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	if q.Where != nil {
		sb.WriteString(" WHERE ")
		q.Where.build(&sb, &args)
	}

	if len(q.Order) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, s := range q.Order {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(s.Col)
			if s.Desc {
				sb.WriteString(" DESC")
			}
		}
	}

	if q.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}

	return sb.String(), args
}

// CountSQL compiles the count-only form of the query, skipping sort and
// limit so nothing is materialized.
func (q Query) CountSQL() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT COUNT(")
	if q.Distinct && len(q.Columns) > 0 {
		sb.WriteString("DISTINCT ")
		sb.WriteString(q.Columns[0])
	} else {
		sb.WriteString("*")
	}
	sb.WriteString(") FROM ")
	sb.WriteString(q.Table)

	for _, j := range q.Joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}

	if q.Where != nil {
		sb.WriteString(" WHERE ")
		q.Where.build(&sb, &args)
	}

	return sb.String(), args
}
