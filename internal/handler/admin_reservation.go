package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// AdminReservationHandler exposes reservation management to dashboard
// staff: listing, creation with optional room pinning, edits, status
// changes, manual room moves and deletion.
type AdminReservationHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepository
}

// NewAdminReservationHandler creates a new AdminReservationHandler instance.
func NewAdminReservationHandler(engine *booking.Engine, reservations *repository.ReservationRepository) *AdminReservationHandler {
	return &AdminReservationHandler{Engine: engine, Reservations: reservations}
}

func actorFrom(c echo.Context) booking.Actor {
	return booking.Actor{AdminID: middleware.AdminID(c), Role: middleware.Role(c)}
}

type reservationDetailResponse struct {
	ID              uint64  `json:"id"`
	Number          string  `json:"reservation_number"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"duration_minutes"`
	PartySize       int     `json:"party_size"`
	Status          string  `json:"status"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone,omitempty"`
	LocationID      uint64  `json:"location_id"`
	LocationName    string  `json:"location_name"`
	RoomID          *uint64 `json:"room_id"`
	RoomName        string  `json:"room_name,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toDetailResponse(d repository.ReservationDetail) reservationDetailResponse {
	return reservationDetailResponse{
		ID:              d.ID,
		Number:          d.Number,
		Date:            d.Date.Format("2006-01-02"),
		Time:            d.Start.String(),
		DurationMinutes: d.DurationMinutes,
		PartySize:       d.PartySize,
		Status:          d.Status,
		SpecialRequests: d.SpecialRequests,
		CustomerName:    d.CustomerName,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		LocationID:      d.LocationID,
		LocationName:    d.LocationName,
		RoomID:          d.RoomID,
		RoomName:        d.RoomName,
		CreatedAt:       d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List returns reservations filtered by location, date, status or a
// search term matching the number or customer.
func (h *AdminReservationHandler) List(c echo.Context) error {
	var f repository.ReservationFilter
	if v := c.QueryParam("location_id"); v != "" {
		id, err := parseUintParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
		}
		f.LocationID = id
	}
	if v := c.QueryParam("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		f.Date = d
	}
	f.Status = c.QueryParam("status")
	f.Search = c.QueryParam("search")

	list, err := h.Reservations.ListDetailed(c.Request().Context(), f)
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]reservationDetailResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDetailResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single reservation with customer and room details.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Reservations.GetDetailed(c.Request().Context(), id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, toDetailResponse(*d))
}

type adminReservationRequest struct {
	LocationID      uint64  `json:"location_id"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM
	PartySize       int     `json:"party_size"`
	DurationMinutes int     `json:"duration_minutes"`
	RoomID          *uint64 `json:"room_id"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	SpecialRequests string  `json:"special_requests"`
}

func (r adminReservationRequest) toEngine(c echo.Context) (booking.AdminRequest, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return booking.AdminRequest{}, err
	}
	return booking.AdminRequest{
		Actor:           actorFrom(c),
		LocationID:      r.LocationID,
		Date:            date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		DurationMinutes: r.DurationMinutes,
		RoomID:          r.RoomID,
		Status:          r.Status,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// Create admits a staff booking, with room pinning and soft-block
// override for managers.
func (h *AdminReservationHandler) Create(c echo.Context) error {
	var req adminReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	er, err := req.toEngine(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	conf, err := h.Engine.BookAdmin(c.Request().Context(), er)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id":     conf.ReservationID,
		"reservation_number": conf.Number,
		"room_name":          conf.Room.Name,
	})
}

// UpdateDetails re-validates and rewrites an existing reservation.
func (h *AdminReservationHandler) UpdateDetails(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req adminReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	er, err := req.toEngine(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if err := h.Engine.UpdateDetails(c.Request().Context(), id, er); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation updated"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus changes only the reservation's status.
func (h *AdminReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Engine.UpdateStatus(c.Request().Context(), actorFrom(c), id, req.Status); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

type assignRoomRequest struct {
	RoomID uint64 `json:"room_id"`
}

// AssignRoom moves a reservation to a specific room in its location.
func (h *AdminReservationHandler) AssignRoom(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assignRoomRequest
	if err := c.Bind(&req); err != nil || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	if err := h.Engine.ReassignRoom(c.Request().Context(), actorFrom(c), id, req.RoomID); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room assigned"})
}

// Delete removes a reservation permanently.
func (h *AdminReservationHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Engine.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}
