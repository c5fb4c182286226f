package v1

import (
	"github.com/google/uuid"

	"github.com/pocketfolio/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string                 `json:"name" example:"Groceries"`     // Name of the category, unique per user
	Type  models.TransactionType `json:"type" example:"expense"`       // Direction the category applies to, "income" or "expense"
	Color string                 `json:"color" example:"#22c55e"`      // Display color
	Icon  models.CategoryIcon    `json:"icon" example:"shopping-cart"` // Display icon
}

func (editable CategoryEditable) model(owner uuid.UUID) models.Category {
	return models.Category{
		OwnerID: owner,
		Name:    editable.Name,
		Type:    editable.Type,
		Color:   editable.Color,
		Icon:    editable.Icon,
	}
}

type Category struct {
	models.DefaultModel
	CategoryEditable
}

func newCategoryResource(model models.Category) Category {
	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Type:  model.Type,
			Color: model.Color,
			Icon:  model.Icon,
		},
	}
}

type CategoryListResponse struct {
	Data  []Category `json:"data"`                                                          // List of categories
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Type models.TransactionType `form:"type"` // By direction the category applies to
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	return models.Category{
		Type: f.Type,
	}, nil
}
