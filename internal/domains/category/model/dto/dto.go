package dto

import (
	"leonine/internal/domains/category/model"
	"leonine/shared"
	gDto "leonine/shared/dto"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateCategoryRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Price       float64  `json:"price"       validate:"gte=0"`
	Features    []string `json:"features"    validate:"omitempty,dive,required,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Image       string   `json:"image"       validate:"omitempty,url"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	features := c.Features
	if features == nil {
		features = []string{}
	}

	return model.Category{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Price:       c.Price,
		Features:    pq.StringArray(features),
		Description: c.Description,
		Image:       c.Image,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateCategoryRequest only writes the fields that are set.
type UpdateCategoryRequest struct {
	Name        string         `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Price       *float64       `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Features    pq.StringArray `db:"features"    json:"features"    validate:"omitempty,dive,required,max=100"`
	Description string         `db:"description" json:"description" validate:"omitempty,max=2000"`
	Image       string         `db:"image"       json:"image"       validate:"omitempty,url"`
}

type CategoryResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.Features = []string(model.Features)
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
