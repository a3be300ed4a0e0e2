package repository

import (
	"reflect"
	"testing"

	"leonine/shared/dto"
	"leonine/shared/model"

	"github.com/stretchr/testify/assert"
)

type suite struct {
	Number  int64  `db:"number"`
	Floor   int    `db:"floor"`
	Label   string `db:"-"`
	Ignored string
	model.Metadata
}

func newSuiteRepo() Repository[suite] {
	return Repository[suite]{
		table:   "suites",
		entity:  "suite",
		primary: "number",
		columns: dbColumns(reflect.TypeOf(suite{})),
	}
}

func TestDBColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"number", "floor", "created_at", "modified_at", "created_by", "modified_by"},
		dbColumns(reflect.TypeOf(suite{})))
}

func TestRepository_Columns(t *testing.T) {
	repo := newSuiteRepo()

	assert.Equal(t, "suites.number", repo.Columns()[0])
	assert.Equal(t, "suites.number, suites.floor", repo.selectList([]string{"floor", "number"}))
}

func TestRepository_Ordering(t *testing.T) {
	repo := newSuiteRepo()

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "known column", params: dto.QueryParams{SortBy: "floor", SortDir: dto.SortDirDesc}, want: "ORDER BY suites.floor DESC"},
		{name: "direction defaults to ascending", params: dto.QueryParams{SortBy: "number"}, want: "ORDER BY suites.number ASC"},
		{name: "unknown column ignored", params: dto.QueryParams{SortBy: "floor; DROP TABLE suites", SortDir: dto.SortDirAsc}, want: ""},
		{name: "no sort", params: dto.QueryParams{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.ordering(tt.params))
		})
	}
}

func TestPaginate(t *testing.T) {
	args := map[string]any{}

	assert.Equal(t, "LIMIT :limit OFFSET :offset", paginate(dto.QueryParams{Page: 3, Limit: 10}, args))
	assert.Equal(t, 10, args["limit"])
	assert.Equal(t, 20, args["offset"])

	args = map[string]any{}

	assert.Equal(t, "LIMIT :limit", paginate(dto.QueryParams{Limit: 5}, args))
	assert.NotContains(t, args, "offset")
	assert.Empty(t, paginate(dto.QueryParams{Page: 2}, map[string]any{}))
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := newSuiteRepo()

	where, args := repo.BuildWhereClause(t.Context(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}
