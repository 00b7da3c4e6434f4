package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// AdminBlockHandler manages reservation blocks: room-level hard and
// soft blocks and location-wide closures.
type AdminBlockHandler struct {
	Blocks *repository.BlockRepository
	Rooms  *repository.RoomRepository
}

// NewAdminBlockHandler creates a new AdminBlockHandler instance.
func NewAdminBlockHandler(blocks *repository.BlockRepository, rooms *repository.RoomRepository) *AdminBlockHandler {
	return &AdminBlockHandler{Blocks: blocks, Rooms: rooms}
}

type blockResponse struct {
	ID           uint64  `json:"id"`
	LocationID   uint64  `json:"location_id"`
	LocationCode string  `json:"location_code"`
	RoomID       *uint64 `json:"room_id"`
	RoomName     string  `json:"room_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BlockType    string  `json:"block_type"`
	Reason       string  `json:"reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// List returns blocks, optionally scoped to a location.
func (h *AdminBlockHandler) List(c echo.Context) error {
	var locationID uint64
	if v := c.QueryParam("location_id"); v != "" {
		id, err := parseUintParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location_id"})
		}
		locationID = id
	}
	list, err := h.Blocks.ListDetailed(c.Request().Context(), locationID)
	if err != nil {
		return writeBookingError(c, err)
	}
	out := make([]blockResponse, 0, len(list))
	for _, b := range list {
		out = append(out, blockResponse{
			ID:           b.ID,
			LocationID:   b.LocationID,
			LocationCode: b.LocationCode,
			RoomID:       b.RoomID,
			RoomName:     b.RoomName,
			StartDate:    b.StartDate.Format("2006-01-02"),
			EndDate:      b.EndDate.Format("2006-01-02"),
			StartTime:    b.StartTime.String(),
			EndTime:      b.EndTime.String(),
			BlockType:    b.BlockType,
			Reason:       b.Reason,
			CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type createBlockRequest struct {
	LocationID uint64  `json:"location_id"`
	RoomID     *uint64 `json:"room_id"` // nil blocks the whole location
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	BlockType  string  `json:"block_type"`
	Reason     string  `json:"reason"`
}

// Create adds a block.  Location-wide blocks (no room) are always
// hard: there is no partial override for a full closure.
func (h *AdminBlockHandler) Create(c echo.Context) error {
	var req createBlockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BlockType != model.BlockHard && req.BlockType != model.BlockSoft {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "block_type must be 'hard' or 'soft'"})
	}
	if req.RoomID == nil && req.BlockType != model.BlockHard {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location-wide blocks must be hard"})
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if endDate.Before(startDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not precede start_date"})
	}
	startTime, err := timeslot.Parse(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM"})
	}
	endTime, err := timeslot.Parse(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be HH:MM"})
	}
	if endTime <= startTime {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	ctx := c.Request().Context()
	if req.RoomID != nil {
		room, err := h.Rooms.GetByID(ctx, *req.RoomID)
		if err != nil {
			return writeBookingError(c, err)
		}
		if room.LocationID != req.LocationID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room belongs to a different location"})
		}
	}

	adminID := middleware.AdminID(c)
	block := &model.ReservationBlock{
		LocationID: req.LocationID,
		RoomID:     req.RoomID,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTime,
		EndTime:    endTime,
		BlockType:  req.BlockType,
		Reason:     req.Reason,
		CreatedBy:  &adminID,
	}
	if err := h.Blocks.Create(ctx, block); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": block.ID})
}

// Delete removes a block, reopening the covered windows.
func (h *AdminBlockHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Blocks.Delete(c.Request().Context(), id); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "block deleted"})
}
