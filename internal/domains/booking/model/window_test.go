package model_test

import (
	"testing"
	"time"

	"leonine/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func at(day, hour int) time.Time {
	return time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	stay := model.Window{Start: at(1, 14), End: at(3, 11)}

	tests := []struct {
		name  string
		other model.Window
		want  bool
	}{
		{name: "back to back after", other: model.Window{Start: at(3, 11), End: at(5, 11)}, want: false},
		{name: "back to back before", other: model.Window{Start: at(1, 8), End: at(1, 14)}, want: false},
		{name: "contained", other: model.Window{Start: at(2, 0), End: at(2, 12)}, want: true},
		{name: "containing", other: model.Window{Start: at(1, 0), End: at(4, 0)}, want: true},
		{name: "straddles start", other: model.Window{Start: at(1, 0), End: at(1, 15)}, want: true},
		{name: "straddles end", other: model.Window{Start: at(3, 10), End: at(4, 0)}, want: true},
		{name: "identical", other: stay, want: true},
		{name: "disjoint", other: model.Window{Start: at(10, 14), End: at(12, 11)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(stay, tt.other))
			assert.Equal(t, tt.want, model.Overlaps(tt.other, stay), "overlap must be symmetric")
		})
	}
}

func TestWindowValid(t *testing.T) {
	assert.True(t, model.Window{Start: at(1, 14), End: at(3, 11)}.Valid())
	assert.False(t, model.Window{Start: at(3, 11), End: at(3, 11)}.Valid())
	assert.False(t, model.Window{Start: at(3, 11), End: at(1, 14)}.Valid())
}

func TestOverlapFilter(t *testing.T) {
	window := model.Window{Start: at(1, 14), End: at(3, 11)}

	filter := window.OverlapFilter(model.TableName)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.start_at < :window_end AND bookings.end_at > :window_start)", where)
	assert.Equal(t, window.End, args["window_end"])
	assert.Equal(t, window.Start, args["window_start"])
}

func TestActiveFilter(t *testing.T) {
	filter := model.ActiveFilter(model.TableName)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "bookings.status NOT IN (:terminal_status_0, :terminal_status_1)", where)
	assert.Equal(t, model.StatusCancelled, args["terminal_status_0"])
	assert.Equal(t, model.StatusRejected, args["terminal_status_1"])
	assert.True(t, model.IsTerminal(model.StatusRejected))
	assert.False(t, model.IsTerminal(model.StatusPending))
}
