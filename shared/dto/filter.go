package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorIn        = "in"
	FilterOperatorNotIn     = "not_in"
	FilterIsNull            = "is_null"
	FilterIsNotNull         = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one predicate on a column. Values are always bound as named
// arguments; ArgName overrides the argument name when one column appears twice.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	name := f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", f.column(), op, name), args
	}

	switch f.Operator {
	case FilterOperatorIn, FilterOperatorNotIn:
		return f.membership(name, args)
	case FilterIsNull:
		return f.column() + " IS NULL", args
	case FilterIsNotNull:
		return f.column() + " IS NOT NULL", args
	default:
		return "", args
	}
}

func (f *Filter) membership(name string, args map[string]any) (string, map[string]any) {
	negate := f.Operator == FilterOperatorNotIn

	keyword := "IN"
	if negate {
		keyword = "NOT IN"
	}

	values := reflect.ValueOf(f.Value)
	if kind := values.Kind(); kind != reflect.Slice && kind != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s %s (:%s)", f.column(), keyword, name), args
	}

	if values.Len() == 0 {
		// empty set: IN matches nothing, NOT IN matches everything
		if negate {
			return "TRUE", args
		}

		return "FALSE", args
	}

	placeholders := make([]string, values.Len())

	for idx := range values.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = values.Index(idx).Interface()
		placeholders[idx] = ":" + key
	}

	return fmt.Sprintf("%s %s (%s)", f.column(), keyword, strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filters and nested FilterGroups with Operator (AND by default).
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := []string{}

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch node := item.(type) {
		case Filter:
			where, arg = node.GetWhereClause()
		case FilterGroup:
			where, arg = node.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
