// Package database builds parameterized list queries with sanitized identifiers.
package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	ILike              ConditionType = "ILIKE"
	In                 ConditionType = "IN"
	Custom             ConditionType = "CUSTOM"
	defaultLimit                     = -1
	defaultOffset                    = -1
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery string
}

func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // panic prevents misuse; custom conditions must provide raw SQL via WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond adds a raw SQL fragment. Placeholders are numbered from $1 within the
// fragment and renumbered when the query is built. The fragment itself is NOT sanitized.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{Type: Custom, rawQuery: rawQuery, Value: params}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  defaultLimit,
		Offset: defaultOffset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

// sanitizeIdentifier quotes identifiers like "column" or "table.column".
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

// BuildListQuery constructs a SQL query string and arguments from options, sanitizing identifiers.
//
// Example usage:
//
//	options := NewListQueryOptions("ads",
//		WithColumns("id", "title"),
//		WithCondition(WhereCond("status", Equal, "approved")),
//		WithOrderBy("created_at", "DESC"),
//		WithLimit(10),
//	)
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	switch {
	case options.CountOnly:
		query.WriteString("SELECT COUNT(*) ")
	case len(options.Columns) == 0:
		query.WriteString("SELECT * ")
	default:
		cols := make([]string, len(options.Columns))
		for i, c := range options.Columns {
			cols[i] = sanitizeIdentifier(c)
		}
		query.WriteString("SELECT " + strings.Join(cols, ", ") + " ")
	}
	query.WriteString("FROM ")
	query.WriteString(pgx.Identifier{options.Table}.Sanitize())

	where, args := buildWhereClause(options.Conditions)
	if where != "" {
		query.WriteString(" " + where)
	}
	if options.CountOnly {
		return query.String(), args
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY " + sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			query.WriteString(" " + dir)
		}
	}
	if options.Limit != defaultLimit {
		args = append(args, options.Limit)
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	if options.Offset != defaultOffset {
		args = append(args, options.Offset)
		query.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	return query.String(), args
}

// buildWhereClause generates the WHERE part of the query; placeholders continue from len(args)+1.
func buildWhereClause(conds []Condition) (string, []any) {
	parts := make([]string, 0, len(conds))
	var args []any
	for _, cond := range conds {
		var frag string
		frag, args = processCondition(cond, args)
		if frag != "" {
			parts = append(parts, frag)
		}
	}
	if len(parts) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

func processCondition(cond Condition, args []any) (string, []any) {
	switch cond.Type {
	case Custom:
		return processCustom(cond, args)
	case In:
		rv := reflect.ValueOf(cond.Value)
		if cond.Field == "" || rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return "", args
		}
		placeholders := make([]string, rv.Len())
		for i := range rv.Len() {
			args = append(args, rv.Index(i).Interface())
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		return fmt.Sprintf("%s IN (%s)", sanitizeIdentifier(cond.Field), strings.Join(placeholders, ", ")), args
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, ILike:
		if cond.Field == "" {
			return "", args
		}
		args = append(args, cond.Value)
		return fmt.Sprintf("%s %s $%d", sanitizeIdentifier(cond.Field), cond.Type, len(args)), args
	}
	return "", args
}

func processCustom(cond Condition, args []any) (string, []any) {
	if cond.rawQuery == "" {
		return "", args
	}
	params, _ := cond.Value.([]any)
	idxMap := make(map[int]int)
	frag := placeholderRe.ReplaceAllStringFunc(cond.rawQuery, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(params) {
			return m
		}
		if _, ok := idxMap[n]; !ok {
			args = append(args, params[n-1])
			idxMap[n] = len(args)
		}
		return "$" + strconv.Itoa(idxMap[n])
	})
	return frag, args
}
