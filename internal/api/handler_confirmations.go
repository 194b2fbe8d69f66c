package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-booking-console/internal/confirm"
	"room-booking-console/internal/console"
)

// ConfirmDelete handles POST /console/:tenant/confirmations/:token and runs
// the parked delete.
func (h *Handler) ConfirmDelete(c *gin.Context) {
	p, err := h.confirms.Take(c.Param("tenant"), c.Param("token"))
	if err != nil {
		fail(c, err, nil)
		return
	}

	ctx := c.Request.Context()
	cs := h.console(c)
	var state any
	switch p.Resource {
	case console.ResourceRoom:
		state, err = cs.Rooms.Delete(ctx, console.RoomState{}, p.ID, confirm.Approved{})
	case console.ResourceBooking:
		state, err = cs.Bookings.Delete(ctx, console.BookingState{SelectedRoomID: p.RoomID}, p.ID, confirm.Approved{})
	case console.ResourceAsset:
		state, err = cs.Assets.Delete(ctx, console.AssetState{}, p.ID, confirm.Approved{})
	default:
		badRequest(c, "unknown resource "+strconv.Quote(p.Resource))
		return
	}
	if err != nil {
		fail(c, err, state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// CancelDelete handles DELETE /console/:tenant/confirmations/:token.
func (h *Handler) CancelDelete(c *gin.Context) {
	if !h.confirms.Cancel(c.Param("tenant"), c.Param("token")) {
		fail(c, confirm.ErrUnknownToken, nil)
		return
	}
	c.Status(http.StatusNoContent)
}
