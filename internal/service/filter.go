package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filters holds list filter values keyed by backend query parameter name.
// Values may be strings, numbers or booleans.
type Filters map[string]any

// Allow-lists of the query parameters each backend list endpoint understands,
// in the order they are sent.
var (
	BookingFilterKeys = []string{"phong_hop_id", "nhan_vien_id", "trang_thai", "tu_ngay", "den_ngay", "ten_dat_phong", "order"}
	RoomFilterKeys    = []string{"don_vi_id", "ten_phong_hop"}
	AssetFilterKeys   = []string{
		"loai_tai_san", "tinh_trang", "nhan_vien_id", "ma_tai_san", "ten_tai_san", "vi_tri",
		"tu_ngay_mua", "den_ngay_mua", "tu_gia_tri", "den_gia_tri", "order",
	}
	AllocationHistoryFilterKeys = []string{"tai_san_id", "nhan_vien_id", "tu_ngay_cap", "den_ngay_cap", "chua_thu_hoi", "da_thu_hoi", "order"}
)

// Query encodes the allowed keys that carry a set value, in allow-list order.
// Keys outside the allow-list are dropped.
func (f Filters) Query(allowed []string) string {
	var b strings.Builder
	for _, key := range allowed {
		v, ok := f[key]
		if !ok || !isSet(v) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatValue(v)))
	}
	return b.String()
}

// Merge returns a copy of f with the entries of other on top.
func (f Filters) Merge(other Filters) Filters {
	out := make(Filters, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// FromValues keeps the allowed keys of query values (first value wins).
func FromValues(values url.Values, allowed []string) Filters {
	out := Filters{}
	for _, key := range allowed {
		if v := values.Get(key); v != "" {
			out[key] = v
		}
	}
	return out
}

// isSet mirrors form truthiness: empty strings, zero numbers, false and nil are unset.
func isSet(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case *int64:
		return t != nil && *t != 0
	case *string:
		return t != nil && *t != ""
	default:
		return true
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case *int64:
		return strconv.FormatInt(*t, 10)
	case *string:
		return *t
	default:
		return fmt.Sprint(t)
	}
}
