package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one AND-joined WHERE term with $n placeholders.
type Condition interface {
	appendSQL(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(w *sqlWriter) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ")
	w.bind(c.value)
}

// sqlWriter accumulates the statement text and its positional args.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$" + strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit caps the row count. Zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.buf.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return w.buf.String(), w.args, nil
}

type setClause struct {
	column string
	value  any
	// raw is written verbatim instead of binding value.
	raw string
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression such as NOW().
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update without where is not allowed")
	}

	var w sqlWriter
	w.buf.WriteString("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column + " = ")
		if s.raw != "" {
			w.buf.WriteString(s.raw)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	return w.buf.String(), w.args, nil
}
