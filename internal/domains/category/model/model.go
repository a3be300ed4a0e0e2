package model

import (
	"leonine/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID          = "id"
	FieldName        = "name"
	FieldPrice       = "price"
	FieldFeatures    = "features"
	FieldDescription = "description"
	FieldImage       = "image"
)

type Category struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Price       float64        `db:"price"`
	Features    pq.StringArray `db:"features"`
	Description string         `db:"description"`
	Image       string         `db:"image"`
	model.Metadata
}
