package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leonine/shared"
	cacheMocks "leonine/shared/cache/mocks"
	"leonine/shared/constant"
	"leonine/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "garbage returns nil", input: "yes please", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt64(t *testing.T) {
	got, err := shared.ConvertStringToInt64(" 101 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(101), got)

	_, err = shared.ConvertStringToInt64("room-101")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 10, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "division with remainder", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Status string  `db:"status"`
		Notes  *string `db:"notes"`
		Reason string  `db:"reason"`
		Hidden string
	}

	notes := "late arrival"
	fields := shared.TransformFields(update{Status: "Confirmed", Notes: &notes, Hidden: "skip"}, "admin@leonine.test")

	assert.Equal(t, "Confirmed", fields["status"])
	assert.Equal(t, &notes, fields["notes"])
	assert.NotContains(t, fields, "reason")
	assert.NotContains(t, fields, "Hidden")
	assert.Equal(t, "admin@leonine.test", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(int64(7), "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, int64(7), args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:101", shared.BuildCacheKey("room:get", 101))
	assert.Equal(t, "category:get:name:Deluxe", shared.BuildCacheKey("category:get", "name", "Deluxe"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	deluxe := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "category", Operator: dto.FilterOperatorEq, Value: "Deluxe", Table: "rooms"},
	}}
	suite := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "category", Operator: dto.FilterOperatorEq, Value: "Suite", Table: "rooms"},
	}}

	first := shared.BuildCacheKeyWithQuery("room:get_all", params, deluxe)
	again := shared.BuildCacheKeyWithQuery("room:get_all", params, deluxe)
	other := shared.BuildCacheKeyWithQuery("room:get_all", params, suite)
	nextPage := shared.BuildCacheKeyWithQuery("room:get_all", dto.QueryParams{Page: 2, Limit: 10}, deluxe)

	assert.True(t, strings.HasPrefix(first, "room:get_all:"))
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:get_all:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:get_all")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func boolPtr(b bool) *bool {
	return &b
}
