package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-booking-console/internal/console"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

// ListRooms handles GET /console/:tenant/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	filters := service.FromValues(c.Request.URL.Query(), service.RoomFilterKeys)
	st := h.console(c).Rooms.SetFilters(c.Request.Context(), console.RoomState{}, filters)
	if st.Error != "" {
		listFailed(c, st.Error, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetRoom handles GET /console/:tenant/rooms/:id. ?mode=edit opens the edit form.
func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	v := h.console(c).Rooms
	st, err := v.OpenView(c.Request.Context(), console.RoomState{}, id)
	if err != nil {
		fail(c, err, st)
		return
	}
	if modeQuery(c) == console.ModeEdit {
		st = v.OpenEdit(st, *st.Selected)
	}
	c.JSON(http.StatusOK, st)
}

// CreateRoom handles POST /console/:tenant/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var form console.RoomForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	v := h.console(c).Rooms
	st := v.OpenCreate(console.RoomState{})
	st.Form = form
	if st.Form.MaxDurationHrs == "" {
		st.Form.MaxDurationHrs = console.DefaultMaxDurationHrs
	}
	st, err := v.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdateRoom handles PUT /console/:tenant/rooms/:id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var form console.RoomForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid request")
		return
	}
	st := console.RoomState{
		Selected: &model.Room{ID: id},
		Modal:    console.Modal{Open: true, Mode: console.ModeEdit},
		Form:     form,
	}
	st, err := h.console(c).Rooms.Submit(c.Request.Context(), st)
	if err != nil {
		fail(c, err, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteRoom handles DELETE /console/:tenant/rooms/:id by asking for confirmation.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.park(c, console.ResourceRoom, id, 0)
}
