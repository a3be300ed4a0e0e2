package dto_test

import (
	"testing"

	"leonine/internal/domains/gallery/model"
	"leonine/internal/domains/gallery/model/dto"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateGalleryRequest_ToModel(t *testing.T) {
	req := dto.CreateGalleryRequest{
		Name:        "Pool at dusk",
		ImageURL:    "https://cdn.leonine.test/pool.jpg",
		Description: "Rooftop pool",
		Category:    "Facilities",
	}

	m := req.ToModel("admin@leonine.test")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, req.Name, m.Name)
	assert.Equal(t, req.ImageURL, m.ImageURL)
	assert.Equal(t, req.Category, m.Category)
	assert.Equal(t, "admin@leonine.test", m.CreatedBy)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestGetGalleriesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	models := []model.Gallery{
		{ID: "g-1", Name: "Lobby", ImageURL: "https://cdn.leonine.test/lobby.jpg", Metadata: gModel.NewMetadata("admin", now)},
		{ID: "g-2", Name: "Spa", ImageURL: "https://cdn.leonine.test/spa.jpg", Metadata: gModel.NewMetadata("admin", now)},
	}

	res := dto.GetGalleriesResponse{}
	res.FromModels(models, 12, 10)

	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Galleries, 2)
	assert.Equal(t, "Spa", res.Galleries[1].Name)
	assert.Equal(t, "https://cdn.leonine.test/lobby.jpg", res.Galleries[0].ImageURL)
}
