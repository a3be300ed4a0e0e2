package model

import (
	"time"

	gDto "leonine/shared/dto"
)

const (
	argWindowStart = "window_start"
	argWindowEnd   = "window_end"
)

// Window is the half-open stay [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Overlaps reports whether a and b share an instant. A departure at T and an
// arrival at T do not overlap.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapFilter is Overlaps expressed against the start_at/end_at columns of table.
func (w Window) OverlapFilter(table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    FieldStartAt,
				ArgName:  argWindowEnd,
				Operator: gDto.FilterOperatorLess,
				Value:    w.End,
				Table:    table,
			},
			gDto.Filter{
				Field:    FieldEndAt,
				ArgName:  argWindowStart,
				Operator: gDto.FilterOperatorGreater,
				Value:    w.Start,
				Table:    table,
			},
		},
	}
}

// ActiveFilter drops bookings in a terminal status.
func ActiveFilter(table string) gDto.Filter {
	return gDto.Filter{
		Field:    FieldStatus,
		ArgName:  "terminal_status",
		Operator: gDto.FilterOperatorNotIn,
		Value:    TerminalStatuses,
		Table:    table,
	}
}
