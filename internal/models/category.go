package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryIcon is the identifier of an icon the frontend can render for a
// category. Icons are an explicit enum mapped through a static table, there
// is no lookup by arbitrary name.
type CategoryIcon string

const (
	IconBriefcase    CategoryIcon = "briefcase"
	IconCar          CategoryIcon = "car"
	IconFilm         CategoryIcon = "film"
	IconGift         CategoryIcon = "gift"
	IconHeart        CategoryIcon = "heart"
	IconHome         CategoryIcon = "home"
	IconPiggyBank    CategoryIcon = "piggy-bank"
	IconPlane        CategoryIcon = "plane"
	IconShoppingCart CategoryIcon = "shopping-cart"
	IconUtensils     CategoryIcon = "utensils"
	IconWallet       CategoryIcon = "wallet"
	IconZap          CategoryIcon = "zap"
)

// categoryIcons maps every supported icon identifier to its display label.
var categoryIcons = map[CategoryIcon]string{
	IconBriefcase:    "Work",
	IconCar:          "Transport",
	IconFilm:         "Entertainment",
	IconGift:         "Gifts",
	IconHeart:        "Health",
	IconHome:         "Housing",
	IconPiggyBank:    "Savings",
	IconPlane:        "Travel",
	IconShoppingCart: "Shopping",
	IconUtensils:     "Food",
	IconWallet:       "Income",
	IconZap:          "Utilities",
}

// Valid reports whether the identifier is a supported icon.
// The empty identifier is valid, it means "no icon".
func (i CategoryIcon) Valid() bool {
	if i == "" {
		return true
	}

	_, ok := categoryIcons[i]
	return ok
}

// Label returns the display label for the icon.
func (i CategoryIcon) Label() string {
	return categoryIcons[i]
}

// Category organizes transactions, budgets and recurring transactions.
type Category struct {
	DefaultModel
	OwnerID uuid.UUID `gorm:"uniqueIndex:category_name_owner"`
	Name    string    `gorm:"uniqueIndex:category_name_owner"`
	Type    TransactionType
	Color   string
	Icon    CategoryIcon
}

// BeforeSave validates the category and normalizes its fields.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	if !c.Type.Valid() {
		return ErrCategoryTypeInvalid
	}

	if !c.Icon.Valid() {
		return ErrCategoryIconInvalid
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}

// Transactions returns all transactions that reference this category.
func (c Category) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(Transaction{CategoryID: &c.ID, OwnerID: c.OwnerID}).Find(&transactions)
	return transactions
}
