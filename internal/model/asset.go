package model

import "encoding/json"

// AssetCondition is the recorded physical state of an asset.
type AssetCondition string

const (
	ConditionNew              AssetCondition = "moi"
	ConditionGood             AssetCondition = "tot"
	ConditionBroken           AssetCondition = "hong"
	ConditionNeedsMaintenance AssetCondition = "can_bao_tri"
)

func (c *AssetCondition) UnmarshalJSON(b []byte) error {
	var t Text
	err := t.UnmarshalJSON(b)
	*c = AssetCondition(t)
	return err
}

// AssetCategory is the kind of asset.
type AssetCategory string

const (
	CategoryComputer  AssetCategory = "may_tinh"
	CategoryPrinter   AssetCategory = "may_in"
	CategoryFurniture AssetCategory = "ban_ghe"
	CategoryVehicle   AssetCategory = "xe"
	CategoryOther     AssetCategory = "khac"
)

func (c *AssetCategory) UnmarshalJSON(b []byte) error {
	var t Text
	err := t.UnmarshalJSON(b)
	*c = AssetCategory(t)
	return err
}

// Asset is an inventory item as returned by the backend. It marshals back to
// the exact item the backend sent.
type Asset struct {
	ID               int64          `json:"id"`
	Code             Text           `json:"ma_tai_san"`
	Name             Text           `json:"ten_tai_san"`
	Category         AssetCategory  `json:"loai_tai_san"`
	CategoryLabel    Text           `json:"loai_tai_san_label,omitempty"`
	Value            *Number        `json:"gia_tri,omitempty"`
	PurchaseDate     Text           `json:"ngay_mua,omitempty"`
	Condition        AssetCondition `json:"tinh_trang,omitempty"`
	ConditionLabel   Text           `json:"tinh_trang_label,omitempty"`
	Location         Text           `json:"vi_tri,omitempty"`
	Manager          *Employee      `json:"nhan_vien_quan_ly,omitempty"`
	AllocationCount  Int            `json:"so_lan_cap_phat,omitempty"`
	LoanCount        Int            `json:"so_lan_muon,omitempty"`
	MaintenanceCount Int            `json:"so_lan_bao_tri,omitempty"`

	raw json.RawMessage
}

func (a *Asset) UnmarshalJSON(b []byte) error {
	type plain Asset
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Asset(p)
	a.raw = keepRaw(b)
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	type plain Asset
	return json.Marshal(plain(a))
}

// ManagerID is the managing employee, 0 when unset.
func (a Asset) ManagerID() int64 {
	if a.Manager == nil {
		return 0
	}
	return a.Manager.ID
}

// AllocationRecord is one issue/return entry of an asset's allocation history.
type AllocationRecord struct {
	ID          int64     `json:"id"`
	AssetID     Int       `json:"tai_san_id,omitempty"`
	Employee    *Employee `json:"nhan_vien,omitempty"`
	IssuedOn    Text      `json:"ngay_cap"`
	ReturnedOn  Text      `json:"ngay_thu_hoi,omitempty"`
	Status      Text      `json:"trang_thai,omitempty"`
	StatusLabel Text      `json:"trang_thai_label,omitempty"`
	DaysHeld    Int       `json:"so_ngay_da_cap"`

	raw json.RawMessage
}

func (r *AllocationRecord) UnmarshalJSON(b []byte) error {
	type plain AllocationRecord
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = AllocationRecord(p)
	r.raw = keepRaw(b)
	return nil
}

func (r AllocationRecord) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain AllocationRecord
	return json.Marshal(plain(r))
}

// Returned reports whether the asset has been taken back.
func (r AllocationRecord) Returned() bool {
	return r.ReturnedOn != ""
}
