package dto

import (
	"leonine/internal/domains/gallery/model"
	"leonine/shared"
	gDto "leonine/shared/dto"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/google/uuid"
)

type CreateGalleryRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	ImageURL    string `json:"image_url"   validate:"required,url"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category"    validate:"omitempty,max=100"`
}

func (c *CreateGalleryRequest) ToModel(user string) model.Gallery {
	return model.Gallery{
		ID:          uuid.NewString(),
		Name:        c.Name,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		Category:    c.Category,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateGalleryRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	ImageURL    string `db:"image_url"   json:"image_url"   validate:"omitempty,url"`
	Description string `db:"description" json:"description" validate:"omitempty,max=2000"`
	Category    string `db:"category"    json:"category"    validate:"omitempty,max=100"`
}

type GalleryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	gDto.Metadata
}

func (r *GalleryResponse) FromModel(model model.Gallery) {
	r.ID = model.ID
	r.Name = model.Name
	r.ImageURL = model.ImageURL
	r.Description = model.Description
	r.Category = model.Category
	r.Metadata.FromModel(model.Metadata)
}

type GetGalleriesResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetGalleriesResponse) FromModels(models []model.Gallery, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Galleries = make([]GalleryResponse, len(models))
	for i, m := range models {
		r.Galleries[i].FromModel(m)
	}
}
