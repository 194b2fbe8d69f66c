package model

import "encoding/json"

// Unit is the organisational unit owning a room.
type Unit struct {
	ID   int64 `json:"id"`
	Name Text  `json:"ten"`
	Code Text  `json:"ma_don_vi,omitempty"`
}

func (u *Unit) UnmarshalJSON(b []byte) error {
	type plain Unit
	var p plain
	id, name, object, err := decodeRef(b, &p)
	if err != nil {
		return err
	}
	if !object {
		p = plain{ID: id, Name: Text(name)}
	}
	*u = Unit(p)
	return nil
}

// RoomAsset is the short asset record embedded in a room.
type RoomAsset struct {
	ID        int64          `json:"id"`
	Name      Text           `json:"ten_tai_san"`
	Category  AssetCategory  `json:"loai_tai_san,omitempty"`
	Condition AssetCondition `json:"tinh_trang,omitempty"`
}

func (a *RoomAsset) UnmarshalJSON(b []byte) error {
	type plain RoomAsset
	var p plain
	id, name, object, err := decodeRef(b, &p)
	if err != nil {
		return err
	}
	if !object {
		p = plain{ID: id, Name: Text(name)}
	}
	*a = RoomAsset(p)
	return nil
}

// Room is a meeting room as returned by the backend. It marshals back to the
// exact item the backend sent.
type Room struct {
	ID             int64       `json:"id"`
	Name           Text        `json:"ten_phong_hop"`
	Location       Text        `json:"vi_tri"`
	Capacity       Int         `json:"suc_chua"`
	Description    Text        `json:"mo_ta"`
	MaxDurationHrs *Number     `json:"thoi_gian_toi_da,omitempty"`
	Unit           *Unit       `json:"don_vi,omitempty"`
	Assets         []RoomAsset `json:"tai_san_list,omitempty"`
	Bookings       []Booking   `json:"dat_phong_list,omitempty"`
	BookingCount   Int         `json:"so_luong_dat_phong"`
	AssetCount     Int         `json:"so_luong_tai_san"`

	raw json.RawMessage
}

func (r *Room) UnmarshalJSON(b []byte) error {
	type plain Room
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Room(p)
	r.raw = keepRaw(b)
	return nil
}

func (r Room) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Room
	return json.Marshal(plain(r))
}

// UnitID is the owning unit, 0 when the backend sent none.
func (r Room) UnitID() int64 {
	if r.Unit == nil {
		return 0
	}
	return r.Unit.ID
}
