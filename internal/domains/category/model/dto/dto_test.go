package dto_test

import (
	"testing"

	"leonine/internal/domains/category/model"
	"leonine/internal/domains/category/model/dto"
	"leonine/shared/validator"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategoryRequest_ToModel(t *testing.T) {
	req := dto.CreateCategoryRequest{Name: "Deluxe", Price: 120.5}

	category := req.ToModel("admin@leonine.test")

	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Deluxe", category.Name)
	assert.Equal(t, pq.StringArray{}, category.Features)
	assert.Equal(t, "admin@leonine.test", category.CreatedBy)
	assert.Equal(t, category.CreatedAt, category.ModifiedAt)
}

func TestCreateCategoryRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateCategoryRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateCategoryRequest{Name: "Suite", Price: 300, Features: []string{"Sea view"}}},
		{name: "missing name", req: dto.CreateCategoryRequest{Price: 10}, wantErr: true},
		{name: "negative price", req: dto.CreateCategoryRequest{Name: "Suite", Price: -1}, wantErr: true},
		{name: "blank feature", req: dto.CreateCategoryRequest{Name: "Suite", Features: []string{""}}, wantErr: true},
		{name: "bad image url", req: dto.CreateCategoryRequest{Name: "Suite", Image: "not a url"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetCategoriesResponse_FromModels(t *testing.T) {
	res := dto.GetCategoriesResponse{}
	res.FromModels([]model.Category{
		{ID: "1", Name: "Standard", Features: pq.StringArray{"Wifi"}},
		{ID: "2", Name: "Deluxe"},
	}, 12, 10)

	assert.Len(t, res.Categories, 2)
	assert.Equal(t, []string{"Wifi"}, res.Categories[0].Features)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 12, res.TotalData)
}
