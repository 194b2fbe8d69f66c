package model

import "encoding/json"

// BookingStatus is the lifecycle state of a booking, owned by the backend.
type BookingStatus string

const (
	BookingDraft     BookingStatus = "draft"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDone      BookingStatus = "done"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists the statuses offered by the booking filter.
var BookingStatuses = []BookingStatus{BookingDraft, BookingConfirmed, BookingDone, BookingCancelled}

func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	var t Text
	err := t.UnmarshalJSON(b)
	*s = BookingStatus(t)
	return err
}

// RoomRef is the room summary embedded in a booking.
type RoomRef struct {
	ID       int64 `json:"id"`
	Name     Text  `json:"ten_phong_hop,omitempty"`
	Location Text  `json:"vi_tri,omitempty"`
}

func (r *RoomRef) UnmarshalJSON(b []byte) error {
	type plain RoomRef
	var p plain
	id, name, object, err := decodeRef(b, &p)
	if err != nil {
		return err
	}
	if !object {
		p = plain{ID: id, Name: Text(name)}
	}
	*r = RoomRef(p)
	return nil
}

// Employee is a person reference used by bookings, assets and allocations.
type Employee struct {
	ID         int64 `json:"id"`
	FullName   Text  `json:"ho_va_ten,omitempty"`
	Email      Text  `json:"email,omitempty"`
	Position   Text  `json:"chuc_vu,omitempty"`
	Department Text  `json:"phong_ban,omitempty"`
}

func (e *Employee) UnmarshalJSON(b []byte) error {
	type plain Employee
	var p plain
	id, name, object, err := decodeRef(b, &p)
	if err != nil {
		return err
	}
	if !object {
		p = plain{ID: id, FullName: Text(name)}
	}
	*e = Employee(p)
	return nil
}

// Booking is a room reservation as returned by the backend. It marshals back
// to the exact item the backend sent.
type Booking struct {
	ID          int64         `json:"id"`
	Title       Text          `json:"ten_dat_phong"`
	Room        *RoomRef      `json:"phong_hop,omitempty"`
	RoomID      Int           `json:"phong_hop_id,omitempty"`
	Requester   *Employee     `json:"nhan_vien,omitempty"`
	RequesterID Int           `json:"nhan_vien_id,omitempty"`
	Start       Text          `json:"thoi_gian_bat_dau"`
	End         Text          `json:"thoi_gian_ket_thuc"`
	DurationHrs *Number       `json:"thoi_gian_dat,omitempty"`
	Purpose     Text          `json:"muc_dich,omitempty"`
	Status      BookingStatus `json:"trang_thai,omitempty"`
	StatusLabel Text          `json:"trang_thai_label,omitempty"`

	raw json.RawMessage
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Booking(p)
	b.raw = keepRaw(data)
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	if len(b.raw) > 0 {
		return b.raw, nil
	}
	type plain Booking
	return json.Marshal(plain(b))
}

// RoomRefID returns the booked room id, preferring the embedded reference.
func (b Booking) RoomRefID() int64 {
	if b.Room != nil && b.Room.ID != 0 {
		return b.Room.ID
	}
	return int64(b.RoomID)
}

// RequesterRefID returns the requester id, preferring the embedded reference.
func (b Booking) RequesterRefID() int64 {
	if b.Requester != nil && b.Requester.ID != 0 {
		return b.Requester.ID
	}
	return int64(b.RequesterID)
}
