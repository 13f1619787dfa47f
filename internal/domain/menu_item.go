package domain

import "time"

// MenuCategory groups menu items.
type MenuCategory string

const (
	MenuCategoryStarter MenuCategory = "STARTER"
	MenuCategoryMain    MenuCategory = "MAIN"
	MenuCategoryDessert MenuCategory = "DESSERT"
	MenuCategoryDrink   MenuCategory = "DRINK"
)

// MenuItem is a dish or drink offered by the restaurant.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    MenuCategory `json:"category"`
	PriceCents  int64        `json:"price_cents"`
	Available   bool         `json:"available"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
