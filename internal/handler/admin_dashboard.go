package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// AdminDashboardHandler serves the dashboard overview: per-day stats,
// a slot-by-slot occupancy heatmap, room management and the audit
// trail.
type AdminDashboardHandler struct {
	Locations    *repository.LocationRepository
	Rooms        *repository.RoomRepository
	Reservations *repository.ReservationRepository
	Audit        *repository.AuditRepository
	Hours        func(locationID uint64) timeslot.Hours
}

// NewAdminDashboardHandler creates a new AdminDashboardHandler instance.
func NewAdminDashboardHandler(locations *repository.LocationRepository, rooms *repository.RoomRepository,
	reservations *repository.ReservationRepository, audit *repository.AuditRepository,
	hours func(uint64) timeslot.Hours) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		Locations: locations, Rooms: rooms, Reservations: reservations, Audit: audit, Hours: hours,
	}
}

type heatmapSlot struct {
	Time     string `json:"time"`
	Guests   int    `json:"guests"`
	Capacity int    `json:"capacity"`
}

type dashboardResponse struct {
	Date          string         `json:"date"`
	LocationID    uint64         `json:"location_id"`
	StatusCounts  map[string]int `json:"status_counts"`
	PeakGuests    int            `json:"peak_guests"`
	OccupancyGrid []heatmapSlot  `json:"occupancy"`
}

// Stats aggregates a location's day: reservation counts per status and
// guests seated per 30-minute slot against the location guest cap.
func (h *AdminDashboardHandler) Stats(c echo.Context) error {
	locationID, err := parseUintParam(c.QueryParam("location_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	loc, err := h.Locations.GetByID(ctx, locationID)
	if err != nil {
		return writeBookingError(c, err)
	}
	counts, err := h.Reservations.CountByStatus(ctx, locationID, date)
	if err != nil {
		return writeBookingError(c, err)
	}

	grid := make([]heatmapSlot, 0, 16)
	peak := 0
	for _, slot := range h.Hours(locationID).GenerateSlots(date, booking.SlotIntervalMinutes) {
		win := timeslot.NewWindow(slot, booking.SlotIntervalMinutes)
		guests, err := h.Reservations.GuestsAt(ctx, locationID, date, win)
		if err != nil {
			return writeBookingError(c, err)
		}
		if guests > peak {
			peak = guests
		}
		grid = append(grid, heatmapSlot{Time: slot.String(), Guests: guests, Capacity: loc.MaxGuestsPerSlot})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Date:          date.Format("2006-01-02"),
		LocationID:    locationID,
		StatusCounts:  counts,
		PeakGuests:    peak,
		OccupancyGrid: grid,
	})
}

type roomResponse struct {
	ID          uint64 `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"max_capacity"`
	IsActive    bool   `json:"is_active"`
}

// ListRooms returns a location's rooms for the dashboard room manager.
func (h *AdminDashboardHandler) ListRooms(c echo.Context) error {
	locationID, err := parseUintParam(c.QueryParam("location_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location_id is required"})
	}
	rooms, err := h.Rooms.ListByLocation(c.Request().Context(), locationID)
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomResponse{
			ID: r.ID, Code: r.Code, Name: r.Name, MaxCapacity: r.MaxCapacity, IsActive: r.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type setRoomActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetRoomActive toggles whether a room participates in auto-assignment.
// Deactivation does not touch existing reservations.
func (h *AdminDashboardHandler) SetRoomActive(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setRoomActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Rooms.SetActive(c.Request().Context(), id, req.IsActive); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room updated"})
}

type auditEntryResponse struct {
	ID         uint64 `json:"id"`
	Admin      string `json:"admin"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditLog returns the most recent audit entries (default 100, capped
// at 500).
func (h *AdminDashboardHandler) AuditLog(c echo.Context) error {
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		if n, err := parseUintParam(v); err == nil && n <= 500 {
			limit = int(n)
		}
	}
	entries, err := h.Audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		admin := e.AdminUsername
		if admin == "" {
			admin = "system"
		}
		out = append(out, auditEntryResponse{
			ID:         e.ID,
			Admin:      admin,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    string(e.Details),
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}
