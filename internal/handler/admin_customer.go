package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// AdminCustomerHandler manages customer records from the dashboard.
type AdminCustomerHandler struct {
	Customers *repository.CustomerRepository
}

// NewAdminCustomerHandler creates a new AdminCustomerHandler instance.
func NewAdminCustomerHandler(customers *repository.CustomerRepository) *AdminCustomerHandler {
	return &AdminCustomerHandler{Customers: customers}
}

type customerResponse struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	NewsletterSignup bool   `json:"newsletter_signup"`
	CreatedAt        string `json:"created_at"`
}

// List returns customers, optionally filtered by a search term on name
// or email.
func (h *AdminCustomerHandler) List(c echo.Context) error {
	list, err := h.Customers.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]customerResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, customerResponse{
			ID:               cu.ID,
			Name:             cu.Name,
			Email:            cu.Email,
			Phone:            cu.Phone,
			NewsletterSignup: cu.NewsletterSignup,
			CreatedAt:        cu.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single customer.
func (h *AdminCustomerHandler) Get(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cu, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, customerResponse{
		ID:               cu.ID,
		Name:             cu.Name,
		Email:            cu.Email,
		Phone:            cu.Phone,
		NewsletterSignup: cu.NewsletterSignup,
		CreatedAt:        cu.CreatedAt.UTC().Format(time.RFC3339),
	})
}

type updateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Update rewrites a customer's contact details.
func (h *AdminCustomerHandler) Update(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if name == "" || email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	err = h.Customers.Update(c.Request().Context(), id, name, email, strings.TrimSpace(req.Phone))
	if errors.Is(err, repository.ErrConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already in use"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer updated"})
}

// Delete removes a customer without reservation history.
func (h *AdminCustomerHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Customers.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "customer has reservations and cannot be deleted"})
	}
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted"})
}
