package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stormkid2009/restooo/internal/api/dto"
	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/service"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// ReservationHandler exposes reservation endpoints.
type ReservationHandler struct {
	reservations *service.ReservationService
}

// NewReservationHandler constructs handler.
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservationService}
}

// Book handles POST /reservations.
func (h *ReservationHandler) Book(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgAuthFailed)
	}

	var req dto.BookReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	res, err := h.reservations.Book(c.UserContext(), service.BookInput{
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		PartySize:  req.PartySize,
		StartsAt:   req.StartsAt,
	}, claims)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"reservation": res,
		},
	})
}

// ListByDay handles GET /reservations?day=2026-08-29, defaulting to today.
func (h *ReservationHandler) ListByDay(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return apperrors.NewValidationError("day must be formatted as YYYY-MM-DD", nil)
		}
		day = parsed
	}

	reservations, err := h.reservations.ListByDay(c.UserContext(), day)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"reservations": reservations,
		},
	})
}

// Cancel handles DELETE /reservations/:id.
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgAuthFailed)
	}

	if err := h.reservations.Cancel(c.UserContext(), c.Params("id"), claims); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Reservation cancelled",
	})
}
