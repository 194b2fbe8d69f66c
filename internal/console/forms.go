package console

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"

	"room-booking-console/internal/model"
	"room-booking-console/internal/parse"
)

// DefaultRequesterID is the requester preselected on new bookings.
const DefaultRequesterID = 3

// DefaultMaxDurationHrs is the preselected maximum booking length of a room.
const DefaultMaxDurationHrs = "4"

var validate = validator.New()

// Value is a raw form input. It accepts JSON strings, numbers and null so the
// browser may post either.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = Value(n.String())
	return nil
}

func idValue(id int64) Value {
	if id == 0 {
		return ""
	}
	return Value(strconv.FormatInt(id, 10))
}

// checkRequired applies the presence checks declared on a form.
func checkRequired(form any) error {
	if err := validate.Struct(form); err != nil {
		return ErrIncompleteForm
	}
	return nil
}

// RoomForm holds the room modal inputs.
type RoomForm struct {
	Name           Value   `json:"ten_phong_hop" validate:"required"`
	Location       Value   `json:"vi_tri" validate:"required"`
	Capacity       Value   `json:"suc_chua" validate:"required"`
	Description    Value   `json:"mo_ta" validate:"required"`
	MaxDurationHrs Value   `json:"thoi_gian_toi_da"`
	UnitID         Value   `json:"don_vi_id" validate:"required"`
	AssetIDs       []Value `json:"tai_san_ids"`
}

// NewRoomForm returns the blank create form.
func NewRoomForm() RoomForm {
	return RoomForm{MaxDurationHrs: DefaultMaxDurationHrs, AssetIDs: []Value{}}
}

// RoomFormFrom prefills the edit form from a room.
func RoomFormFrom(r model.Room) RoomForm {
	form := RoomForm{
		Name:           Value(r.Name),
		Location:       Value(r.Location),
		Description:    Value(r.Description),
		MaxDurationHrs: DefaultMaxDurationHrs,
		AssetIDs:       make([]Value, 0, len(r.Assets)),
	}
	if r.Capacity != 0 {
		form.Capacity = Value(strconv.FormatInt(int64(r.Capacity), 10))
	}
	if r.MaxDurationHrs != nil && *r.MaxDurationHrs != 0 {
		form.MaxDurationHrs = Value(r.MaxDurationHrs.String())
	}
	form.UnitID = idValue(r.UnitID())
	for _, a := range r.Assets {
		form.AssetIDs = append(form.AssetIDs, idValue(a.ID))
	}
	return form
}

// RoomPayload is the body of room create and update calls.
type RoomPayload struct {
	Name           string   `json:"ten_phong_hop"`
	Location       string   `json:"vi_tri"`
	Capacity       *int     `json:"suc_chua"`
	Description    string   `json:"mo_ta"`
	MaxDurationHrs *float64 `json:"thoi_gian_toi_da"`
	UnitID         *int     `json:"don_vi_id"`
	AssetIDs       []*int   `json:"tai_san_ids,omitempty"`
}

// Payload validates the form and converts it to the request body.
func (f RoomForm) Payload() (RoomPayload, error) {
	if err := checkRequired(f); err != nil {
		return RoomPayload{}, err
	}
	p := RoomPayload{
		Name:           string(f.Name),
		Location:       string(f.Location),
		Capacity:       parse.Int(string(f.Capacity)),
		Description:    string(f.Description),
		MaxDurationHrs: parse.Float(string(f.MaxDurationHrs)),
		UnitID:         parse.Int(string(f.UnitID)),
	}
	if len(f.AssetIDs) > 0 {
		p.AssetIDs = parse.Ints(values(f.AssetIDs))
	}
	return p, nil
}

// BookingForm holds the booking modal inputs.
type BookingForm struct {
	Title       Value `json:"ten_dat_phong" validate:"required"`
	RoomID      Value `json:"phong_hop_id" validate:"required"`
	RequesterID Value `json:"nhan_vien_id"`
	Start       Value `json:"thoi_gian_bat_dau" validate:"required"`
	End         Value `json:"thoi_gian_ket_thuc" validate:"required"`
	Purpose     Value `json:"muc_dich"`
}

// NewBookingForm returns the create form for a room.
func NewBookingForm(roomID int64) BookingForm {
	return BookingForm{
		RoomID:      idValue(roomID),
		RequesterID: idValue(DefaultRequesterID),
	}
}

// BookingFormFrom prefills the edit form from a booking. Times are converted
// to datetime-local values in r.loc.
func (r recorder) BookingFormFrom(b model.Booking, selectedRoomID int64) BookingForm {
	roomID := b.RoomRefID()
	if roomID == 0 {
		roomID = selectedRoomID
	}
	requester := b.RequesterRefID()
	if requester == 0 {
		requester = DefaultRequesterID
	}
	return BookingForm{
		Title:       Value(b.Title),
		RoomID:      idValue(roomID),
		RequesterID: idValue(requester),
		Start:       Value(parse.DateTimeLocal(string(b.Start), r.loc)),
		End:         Value(parse.DateTimeLocal(string(b.End), r.loc)),
		Purpose:     Value(b.Purpose),
	}
}

// BookingPayload is the body of booking create and update calls.
type BookingPayload struct {
	Title       string `json:"ten_dat_phong"`
	RoomID      *int   `json:"phong_hop_id"`
	Start       string `json:"thoi_gian_bat_dau"`
	End         string `json:"thoi_gian_ket_thuc"`
	Purpose     string `json:"muc_dich"`
	RequesterID *int   `json:"nhan_vien_id,omitempty"`
}

// Payload validates the form and converts it to the request body.
func (f BookingForm) Payload() (BookingPayload, error) {
	if err := checkRequired(f); err != nil {
		return BookingPayload{}, err
	}
	p := BookingPayload{
		Title:   string(f.Title),
		RoomID:  parse.Int(string(f.RoomID)),
		Start:   string(f.Start),
		End:     string(f.End),
		Purpose: string(f.Purpose),
	}
	if f.RequesterID != "" {
		p.RequesterID = parse.Int(string(f.RequesterID))
	}
	return p, nil
}

// AssetForm holds the asset modal inputs.
type AssetForm struct {
	Code         Value `json:"ma_tai_san" validate:"required"`
	Name         Value `json:"ten_tai_san" validate:"required"`
	Category     Value `json:"loai_tai_san" validate:"required"`
	Value        Value `json:"gia_tri"`
	PurchaseDate Value `json:"ngay_mua"`
	Condition    Value `json:"tinh_trang"`
	Location     Value `json:"vi_tri"`
	ManagerID    Value `json:"nhan_vien_id"`
}

// AssetFormFrom prefills the edit form from an asset.
func AssetFormFrom(a model.Asset) AssetForm {
	form := AssetForm{
		Code:         Value(a.Code),
		Name:         Value(a.Name),
		Category:     Value(a.Category),
		PurchaseDate: Value(parse.DatePart(string(a.PurchaseDate))),
		Condition:    Value(a.Condition),
		Location:     Value(a.Location),
	}
	if a.Value != nil && *a.Value != 0 {
		form.Value = Value(a.Value.String())
	}
	form.ManagerID = idValue(a.ManagerID())
	return form
}

// AssetPayload is the body of asset create and update calls.
type AssetPayload struct {
	Code         string   `json:"ma_tai_san"`
	Name         string   `json:"ten_tai_san"`
	Category     string   `json:"loai_tai_san"`
	Condition    string   `json:"tinh_trang"`
	Location     string   `json:"vi_tri"`
	Value        *float64 `json:"gia_tri,omitempty"`
	PurchaseDate string   `json:"ngay_mua,omitempty"`
	ManagerID    *int     `json:"nhan_vien_id,omitempty"`
}

// Payload validates the form and converts it to the request body. Optional
// fields are only sent when filled in.
func (f AssetForm) Payload() (AssetPayload, error) {
	if err := checkRequired(f); err != nil {
		return AssetPayload{}, err
	}
	p := AssetPayload{
		Code:         string(f.Code),
		Name:         string(f.Name),
		Category:     string(f.Category),
		Condition:    string(f.Condition),
		Location:     string(f.Location),
		PurchaseDate: string(f.PurchaseDate),
	}
	if f.Value != "" {
		p.Value = parse.Float(string(f.Value))
	}
	if f.ManagerID != "" {
		p.ManagerID = parse.Int(string(f.ManagerID))
	}
	return p, nil
}

func values(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
