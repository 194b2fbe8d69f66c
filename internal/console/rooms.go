package console

import (
	"context"

	"github.com/rs/zerolog/log"

	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/model"
	"room-booking-console/internal/service"
)

const (
	msgRoomListFailed   = "Không thể tải danh sách phòng họp"
	msgRoomDetailFailed = "Không thể tải chi tiết phòng họp"
)

// RoomState is the room management screen.
type RoomState struct {
	Filters  service.Filters `json:"filters"`
	Rooms    []model.Room    `json:"rooms"`
	Selected *model.Room     `json:"selected,omitempty"`
	Modal    Modal           `json:"modal"`
	Form     RoomForm        `json:"form"`
	Error    string          `json:"error,omitempty"`
	Notices  []Notice        `json:"notices,omitempty"`
}

// RoomView drives the room management screen.
type RoomView struct {
	rooms service.Resource
	rec   recorder
}

func newRoomView(rooms service.Resource, rec recorder) *RoomView {
	return &RoomView{rooms: rooms, rec: rec}
}

// Load fetches the room list for the current filters.
func (v *RoomView) Load(ctx context.Context, st RoomState) RoomState {
	env, err := v.rooms.List(ctx, st.Filters)
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
	return st
}

// SetFilters replaces the filters and reloads.
func (v *RoomView) SetFilters(ctx context.Context, st RoomState, filters service.Filters) RoomState {
	st.Filters = filters
	return v.Load(ctx, st)
}

func (v *RoomView) OpenCreate(st RoomState) RoomState {
	st.Notices = nil
	st.Selected = nil
	st.Form = NewRoomForm()
	st.Modal = Modal{Open: true, Mode: ModeCreate}
	return st
}

func (v *RoomView) OpenEdit(st RoomState, room model.Room) RoomState {
	st.Notices = nil
	st.Selected = &room
	st.Form = RoomFormFrom(room)
	st.Modal = Modal{Open: true, Mode: ModeEdit}
	return st
}

// OpenView fetches the room detail and opens it read-only.
func (v *RoomView) OpenView(ctx context.Context, st RoomState, id int64) (RoomState, error) {
	st.Notices = nil
	env, err := v.rooms.FindOne(ctx, id)
	if err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: "Lỗi: " + err.Error()}}
		return st, err
	}
	if !env.OK() {
		st.Notices = []Notice{{Level: LevelError, Message: msgRoomDetailFailed}}
		return st, &BusinessError{Message: env.Message}
	}
	var room model.Room
	if err := env.DecodeData(&room); err != nil {
		st.Notices = []Notice{{Level: LevelError, Message: msgRoomDetailFailed}}
		return st, err
	}
	st.Selected = &room
	st.Form = RoomFormFrom(room)
	st.Modal = Modal{Open: true, Mode: ModeView}
	return st, nil
}

// Close dismisses the modal.
func (v *RoomView) Close(st RoomState) RoomState {
	st.Modal = Modal{}
	st.Selected = nil
	st.Form = RoomForm{}
	return st
}

// Submit creates or updates the room from the form. The modal closes and the
// list reloads only when the backend accepts the change.
func (v *RoomView) Submit(ctx context.Context, st RoomState) (RoomState, error) {
	st.Notices = nil
	payload, err := st.Form.Payload()
	if err != nil {
		st.Notices = []Notice{{Level: LevelWarning, Message: err.Error()}}
		return st, err
	}

	action, id := actionCreate, int64(0)
	if st.Modal.Mode == ModeEdit {
		if st.Selected == nil {
			return st, ErrNoSelection
		}
		action, id = actionUpdate, st.Selected.ID
	}

	env, err := v.write(ctx, action, id, payload)
	if action == actionCreate {
		id = createdID(env)
	}
	notice, err := v.rec.outcome(ctx, ResourceRoom, action, id, env, err, "Lỗi: ")
	st.Notices = []Notice{notice}
	if err != nil {
		return st, err
	}
	st = v.Close(st)
	st = v.Load(ctx, st)
	st.Notices = []Notice{notice}
	return st, nil
}

func (v *RoomView) write(ctx context.Context, action string, id int64, payload RoomPayload) (*apiclient.Envelope, error) {
	if action == actionUpdate {
		return v.rooms.Update(ctx, id, payload)
	}
	return v.rooms.Create(ctx, payload)
}

// Delete removes a room once confirm approves it. A declined confirmation
// makes no backend call.
func (v *RoomView) Delete(ctx context.Context, st RoomState, id int64, confirm Confirmer) (RoomState, error) {
	st.Notices = nil
	if !confirm.Confirm(ctx, promptDeleteRoom) {
		return st, ErrCancelled
	}
	env, err := v.rooms.Delete(ctx, id)
	notice, err := v.rec.outcome(ctx, ResourceRoom, actionDelete, id, env, err, "Lỗi: ")
	if err != nil {
		st.Notices = []Notice{notice}
		return st, err
	}
	st = v.Load(ctx, st)
	st.Notices = []Notice{notice}
	return st, nil
}
