package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-booking-console/internal/console"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

// roomQuery reads the optional ?room_id= selector.
func roomQuery(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Query("room_id"), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// formRoomID is the room a booking form points at.
func formRoomID(form console.BookingForm) int64 {
	id, err := strconv.ParseInt(string(form.RoomID), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ListBookings handles GET /console/:tenant/bookings. Without ?room_id= the
// first room is selected.
func (h *Handler) ListBookings(c *gin.Context) {
	st := console.BookingState{
		SelectedRoomID: roomQuery(c),
		Filters:        service.FromValues(c.Request.URL.Query(), service.BookingFilterKeys),
	}
	st = h.console(c).Bookings.Load(c.Request.Context(), st)
	if st.Error != "" {
		listFailed(c, st.Error, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetBooking handles GET /console/:tenant/bookings/:id.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	st, err := h.console(c).Bookings.OpenByID(c.Request.Context(), console.BookingState{}, id, modeQuery(c))
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// CreateBooking handles POST /console/:tenant/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var form console.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	v := h.console(c).Bookings
	st := v.OpenCreate(console.BookingState{SelectedRoomID: formRoomID(form)})
	st.Form = form
	st, err := v.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateBooking handles PUT /console/:tenant/bookings/:id.
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var form console.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	st := console.BookingState{
		SelectedRoomID: formRoomID(form),
		Editing:        &model.Booking{ID: id},
		Modal:          console.Modal{Open: true, Mode: console.ModeEdit},
		Form:           form,
	}
	st, err := h.console(c).Bookings.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteBooking handles DELETE /console/:tenant/bookings/:id. ?room_id= lets
// the confirmed delete reload that room's list and notify its followers.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.park(c, console.ResourceBooking, id, roomQuery(c))
}
