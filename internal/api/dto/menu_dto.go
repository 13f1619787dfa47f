package dto

// MenuItemRequest payload for creating or updating a menu item.
type MenuItemRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"required,oneof=STARTER MAIN DESSERT DRINK"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	Available   bool   `json:"available"`
}
