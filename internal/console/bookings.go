package console

import (
	"context"

	"github.com/rs/zerolog/log"

	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

// BookingState is the booking list screen. The list is always scoped to the
// selected room.
type BookingState struct {
	Rooms          []model.Room    `json:"rooms"`
	SelectedRoomID int64           `json:"selected_room_id,omitempty"`
	RoomDetail     *model.Room     `json:"room_detail,omitempty"`
	Bookings       []model.Booking `json:"bookings"`
	Filters        service.Filters `json:"filters"`
	Modal          Modal           `json:"modal"`
	Editing        *model.Booking  `json:"editing,omitempty"`
	Viewing        *model.Booking  `json:"viewing,omitempty"`
	Form           BookingForm     `json:"form"`
	Error          string          `json:"error,omitempty"`
	Notices        []Notice        `json:"notices,omitempty"`
}

// BookingView drives the booking screen.
type BookingView struct {
	rooms    service.Resource
	bookings service.Resource
	rec      recorder
}

func newBookingView(rooms, bookings service.Resource, rec recorder) *BookingView {
	return &BookingView{rooms: rooms, bookings: bookings, rec: rec}
}

// Load fetches the room list, selects the first room when none is selected
// and loads that room's detail and bookings.
func (v *BookingView) Load(ctx context.Context, st BookingState) BookingState {
	env, err := v.rooms.List(ctx, nil)
	if err != nil || !env.OK() {
		st.Error = loadMessage(env, err, msgRoomListFailed)
		return st
	}
	var rooms []model.Room
	if err := env.DecodeData(&rooms); err != nil {
		log.Warn().Err(err).Str("tenant", v.rec.tenant).Msg("undecodable room list")
		st.Error = msgRoomListFailed
		return st
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	st.Rooms = rooms
	st.Error = ""
	if st.SelectedRoomID == 0 && len(rooms) > 0 {
		st.SelectedRoomID = rooms[0].ID
	}
	if st.SelectedRoomID == 0 {
		return st
	}
	st = v.loadRoomDetail(ctx, st)
	return v.loadBookings(ctx, st)
}

// SelectRoom switches the screen to another room.
func (v *BookingView) SelectRoom(ctx context.Context, st BookingState, roomID int64) BookingState {
	st.SelectedRoomID = roomID
	st.RoomDetail = nil
	st.Bookings = nil
	if roomID == 0 {
		return st
	}
	st = v.loadRoomDetail(ctx, st)
	return v.loadBookings(ctx, st)
}

// SetFilters replaces the booking filters and reloads the list.
func (v *BookingView) SetFilters(ctx context.Context, st BookingState, filters service.Filters) BookingState {
	st.Filters = filters
	if st.SelectedRoomID == 0 {
		return st
	}
	return v.loadBookings(ctx, st)
}

// ResetFilters clears every booking filter.
func (v *BookingView) ResetFilters(ctx context.Context, st BookingState) BookingState {
	return v.SetFilters(ctx, st, service.Filters{})
}

// loadRoomDetail is best effort; the screen still works without the detail panel.
func (v *BookingView) loadRoomDetail(ctx context.Context, st BookingState) BookingState {
	env, err := v.rooms.GetByID(ctx, st.SelectedRoomID)
	if err != nil || !env.OK() {
		log.Warn().Err(err).Int64("room_id", st.SelectedRoomID).Msg("failed to load room detail")
		return st
	}
	var room model.Room
	if err := env.DecodeData(&room); err != nil {
		log.Warn().Err(err).Int64("room_id", st.SelectedRoomID).Msg("undecodable room detail")
		return st
	}
	st.RoomDetail = &room
	return st
}

// loadBookings lists the bookings of the selected room. Failures leave an
// empty list behind.
func (v *BookingView) loadBookings(ctx context.Context, st BookingState) BookingState {
	filters := st.Filters.Merge(service.Filters{"phong_hop_id": st.SelectedRoomID})
	env, err := v.bookings.List(ctx, filters)
	if err != nil || !env.OK() {
		log.Warn().Err(err).Int64("room_id", st.SelectedRoomID).Msg("failed to load bookings")
		st.Bookings = []model.Booking{}
		return st
	}
	var bookings []model.Booking
	if err := env.DecodeData(&bookings); err != nil {
		log.Warn().Err(err).Int64("room_id", st.SelectedRoomID).Msg("undecodable booking list")
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	st.Bookings = bookings
	return st
}

func (v *BookingView) OpenCreate(st BookingState) BookingState {
	st.Notices = nil
	st.Editing = nil
	st.Viewing = nil
	st.Form = NewBookingForm(st.SelectedRoomID)
	st.Modal = Modal{Open: true, Mode: ModeCreate}
	return st
}

func (v *BookingView) OpenEdit(st BookingState, b model.Booking) BookingState {
	st.Notices = nil
	st.Editing = &b
	st.Viewing = nil
	st.Form = v.rec.BookingFormFrom(b, st.SelectedRoomID)
	st.Modal = Modal{Open: true, Mode: ModeEdit}
	return st
}

func (v *BookingView) OpenView(st BookingState, b model.Booking) BookingState {
	st.Notices = nil
	st.Viewing = &b
	st.Editing = nil
	st.Modal = Modal{Open: true, Mode: ModeView}
	return st
}

// Close dismisses the modal.
func (v *BookingView) Close(st BookingState) BookingState {
	st.Modal = Modal{}
	st.Editing = nil
	st.Viewing = nil
	st.Form = BookingForm{}
	return st
}

// Submit creates or updates the booking from the form.
func (v *BookingView) Submit(ctx context.Context, st BookingState) (BookingState, error) {
	st.Notices = nil
	payload, err := st.Form.Payload()
	if err != nil {
		st.Notices = []Notice{{Level: LevelWarning, Message: err.Error()}}
		return st, err
	}

	var env *apiclient.Envelope
	action, id := actionCreate, int64(0)
	if st.Modal.Mode == ModeEdit {
		if st.Editing == nil {
			return st, ErrNoSelection
		}
		action, id = actionUpdate, st.Editing.ID
		env, err = v.bookings.Update(ctx, id, payload)
	} else {
		env, err = v.bookings.Create(ctx, payload)
		id = createdID(env)
	}

	notice, err := v.rec.outcome(ctx, ResourceBooking, action, id, env, err, "Lỗi: ")
	st.Notices = []Notice{notice}
	if err != nil {
		return st, err
	}

	event := model.BookingEvent{BookingID: id, Title: payload.Title, Action: model.BookingCreated}
	if action == actionUpdate {
		event.Action = model.BookingUpdated
	}
	if payload.RoomID != nil {
		event.RoomID = int64(*payload.RoomID)
	}
	v.rec.notify(event)

	st = v.Close(st)
	if st.SelectedRoomID != 0 {
		st = v.loadBookings(ctx, st)
	}
	st.Notices = []Notice{notice}
	return st, nil
}

// Delete removes a booking once confirm approves it.
func (v *BookingView) Delete(ctx context.Context, st BookingState, id int64, confirm Confirmer) (BookingState, error) {
	st.Notices = nil
	if !confirm.Confirm(ctx, promptDeleteBooking) {
		return st, ErrCancelled
	}
	env, err := v.bookings.Delete(ctx, id)
	notice, err := v.rec.outcome(ctx, ResourceBooking, actionDelete, id, env, err, "Lỗi khi xóa: ")
	st.Notices = []Notice{notice}
	if err != nil {
		return st, err
	}

	event := model.BookingEvent{BookingID: id, RoomID: st.SelectedRoomID, Action: model.BookingDeleted}
	for _, b := range st.Bookings {
		if b.ID == id {
			event.Title = string(b.Title)
			if rid := b.RoomRefID(); rid != 0 {
				event.RoomID = rid
			}
			break
		}
	}
	v.rec.notify(event)

	if st.SelectedRoomID != 0 {
		st = v.loadBookings(ctx, st)
	}
	return st, nil
}

// OpenByID fetches one booking and opens it in mode (view or edit).
func (v *BookingView) OpenByID(ctx context.Context, st BookingState, id int64, mode Mode) (BookingState, error) {
	st.Notices = nil
	env, err := v.bookings.FindOne(ctx, id)
	if err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + err.Error()}}
		return st, err
	}
	if !env.OK() {
		berr := &BusinessError{Message: env.Message}
		st.Notices = []Notice{{Level: LevelError, Message: berr.Error()}}
		return st, berr
	}
	var b model.Booking
	if err := env.DecodeData(&b); err != nil {
		log.Warn().Err(err).Str("tenant", v.rec.tenant).Int64("id", id).Msg("undecodable booking")
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + apiclient.MsgFallback}}
		return st, err
	}
	if st.SelectedRoomID == 0 {
		st.SelectedRoomID = b.RoomRefID()
	}
	if mode == ModeEdit {
		return v.OpenEdit(st, b), nil
	}
	return v.OpenView(st, b), nil
}
