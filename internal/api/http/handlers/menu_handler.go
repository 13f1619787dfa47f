package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stormkid2009/restooo/internal/api/dto"
	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/service"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// MenuHandler exposes menu endpoints.
type MenuHandler struct {
	menu *service.MenuService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menuService}
}

// List handles GET /menu. The route carries optional auth: anonymous and
// STAFF callers see only available items, kitchen and management see all.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	items, err := h.menu.List(c.UserContext())
	if err != nil {
		return err
	}

	if !canSeeUnavailable(c) {
		visible := make([]domain.MenuItem, 0, len(items))
		for _, item := range items {
			if item.Available {
				visible = append(visible, item)
			}
		}
		items = visible
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"items": items,
		},
	})
}

// Create handles POST /menu.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	req, err := parseMenuItem(c)
	if err != nil {
		return err
	}

	item := menuItemFromRequest(req)
	if err := h.menu.Create(c.UserContext(), item); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"item": item,
		},
	})
}

// Update handles PUT /menu/:id.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	req, err := parseMenuItem(c)
	if err != nil {
		return err
	}

	item := menuItemFromRequest(req)
	item.ID = c.Params("id")
	if err := h.menu.Update(c.UserContext(), item); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"item": item,
		},
	})
}

// Delete handles DELETE /menu/:id.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.menu.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Menu item deleted",
	})
}

func parseMenuItem(c *fiber.Ctx) (*dto.MenuItemRequest, error) {
	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func menuItemFromRequest(req *dto.MenuItemRequest) *domain.MenuItem {
	return &domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    domain.MenuCategory(req.Category),
		PriceCents:  req.PriceCents,
		Available:   req.Available,
	}
}

func canSeeUnavailable(c *fiber.Ctx) bool {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return false
	}
	switch claims.Role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleChef:
		return true
	}
	return false
}
