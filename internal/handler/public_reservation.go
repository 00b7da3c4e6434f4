package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated website endpoints: location
// listing, per-day availability and booking submission.
type PublicHandler struct {
	Engine    *booking.Engine
	Locations *repository.LocationRepository
	Publish   func(context.Context, queue.ReservationConfirmedEvent) error
}

// NewPublicHandler creates a new PublicHandler instance.  publish may
// be nil to disable event publication.
func NewPublicHandler(engine *booking.Engine, locations *repository.LocationRepository,
	publish func(context.Context, queue.ReservationConfirmedEvent) error) *PublicHandler {
	return &PublicHandler{Engine: engine, Locations: locations, Publish: publish}
}

type locationResponse struct {
	ID       uint64 `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// ListLocations returns the restaurants guests can book at.
func (h *PublicHandler) ListLocations(c echo.Context) error {
	locs, err := h.Locations.List(c.Request().Context())
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]locationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, locationResponse{ID: l.ID, Code: l.Code, Name: l.Name, Timezone: l.Timezone})
	}
	return c.JSON(http.StatusOK, out)
}

// Availability returns the bookable slots of a location on a date.
// Query parameters: location_id, date (YYYY-MM-DD).
func (h *PublicHandler) Availability(c echo.Context) error {
	locationID, err := parseUintParam(c.QueryParam("location_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	day, err := h.Engine.Availability(c.Request().Context(), locationID, date)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, day)
}

type createReservationRequest struct {
	LocationID      uint64 `json:"location_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // HH:MM
	PartySize       int    `json:"party_size"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"special_requests"`
}

type createReservationResponse struct {
	ReservationID     uint64 `json:"reservation_id"`
	ReservationNumber string `json:"reservation_number"`
	RoomName          string `json:"room_name"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	PartySize         int    `json:"party_size"`
}

// CreateReservation admits a website booking.  On success the
// confirmation event is published in the background; a broker outage
// never fails a committed booking.
func (h *PublicHandler) CreateReservation(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	conf, err := h.Engine.BookPublic(c.Request().Context(), booking.PublicRequest{
		LocationID:      req.LocationID,
		Date:            date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return writeBookingError(c, err)
	}

	if h.Publish != nil {
		loc, lerr := h.Locations.GetByID(c.Request().Context(), req.LocationID)
		locationName := ""
		if lerr == nil {
			locationName = loc.Name
		}
		ev := queue.ReservationConfirmedEvent{
			EventID:           uuid.NewString(),
			ReservationID:     conf.ReservationID,
			ReservationNumber: conf.Number,
			CustomerName:      req.Name,
			CustomerEmail:     req.Email,
			LocationID:        req.LocationID,
			LocationName:      locationName,
			RoomID:            conf.Room.ID,
			RoomName:          conf.Room.Name,
			Date:              req.Date,
			Time:              req.Time,
			DurationMinutes:   booking.DefaultDurationMinutes,
			PartySize:         req.PartySize,
			SpecialRequests:   req.SpecialRequests,
			ConfirmedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Publish(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, createReservationResponse{
		ReservationID:     conf.ReservationID,
		ReservationNumber: conf.Number,
		RoomName:          conf.Room.Name,
		Date:              req.Date,
		Time:              req.Time,
		PartySize:         req.PartySize,
	})
}
