package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// NewsletterHandler manages newsletter subscriptions from the public
// site.
type NewsletterHandler struct {
	Repo *repository.NewsletterRepository
}

// NewNewsletterHandler creates a new NewsletterHandler instance.
func NewNewsletterHandler(repo *repository.NewsletterRepository) *NewsletterHandler {
	return &NewsletterHandler{Repo: repo}
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe signs an email up, reactivating a previously unsubscribed
// address.  An already-active subscription responds 409.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	err := h.Repo.Subscribe(c.Request().Context(), email, strings.TrimSpace(req.Name))
	if errors.Is(err, repository.ErrConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email is already subscribed"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "subscribed"})
}

// Unsubscribe marks an email inactive.
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	err := h.Repo.Unsubscribe(c.Request().Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active subscription for this email"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unsubscribed"})
}
