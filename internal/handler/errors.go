// Package handler contains the Echo HTTP handlers for the public
// booking API and the admin dashboard API.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// writeBookingError maps engine and repository errors onto HTTP
// responses.  Validation, capacity, hard-block and no-availability
// failures are client errors (400); a soft block without manager
// override is a permission problem (403); exhausted number retries and
// unique-key collisions are conflicts (409).
func writeBookingError(c echo.Context, err error) error {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	}
	var ce *booking.CapacityError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ce.Error()})
	}
	var be *booking.BlockedError
	if errors.As(err, &be) {
		if be.Soft {
			return c.JSON(http.StatusForbidden, echo.Map{"error": be.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": be.Error()})
	}
	var nf *booking.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	}
	switch {
	case errors.Is(err, booking.ErrNoAvailability):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no rooms available for the requested time"})
	case errors.Is(err, booking.ErrConflict), errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict, please retry"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
