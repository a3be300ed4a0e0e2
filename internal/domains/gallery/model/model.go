package model

import "leonine/shared/model"

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldName        = "name"
	FieldImageURL    = "image_url"
	FieldDescription = "description"
	FieldCategory    = "category"
)

type Gallery struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	ImageURL    string `db:"image_url"`
	Description string `db:"description"`
	Category    string `db:"category"`
	model.Metadata
}
