package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-console/config"
	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/confirm"
	"room-booking-console/internal/store"
)

// scriptedBackend answers "METHOD PATH" with a fixed status and body.
type scriptedBackend struct {
	mu      sync.Mutex
	routes  map[string]scripted
	methods []string
}

type scripted struct {
	status int
	body   string
}

func newScriptedBackend(t *testing.T, routes map[string]scripted) (*scriptedBackend, *apiclient.Client) {
	t.Helper()
	sb := &scriptedBackend{routes: routes}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		sb.mu.Lock()
		sb.methods = append(sb.methods, key)
		resp, ok := sb.routes[key]
		sb.mu.Unlock()
		if !ok {
			resp = scripted{status: http.StatusNotFound, body: `{"message":"not scripted"}`}
		}
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	t.Cleanup(server.Close)
	return sb, apiclient.NewWithHTTPClient(server.URL, nil, server.Client())
}

func (sb *scriptedBackend) seen(key string) int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	n := 0
	for _, m := range sb.methods {
		if m == key {
			n++
		}
	}
	return n
}

func newTestRouter(t *testing.T, client *apiclient.Client, s store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(Deps{Backend: client, Store: s})
	return NewRouter(h, config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000})
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestStatusFor(t *testing.T) {
	_, client := newScriptedBackend(t, map[string]scripted{
		"GET /api/phong_hop/admin1/1": {status: http.StatusOK, body: `{"status":"error","message":"Không có quyền"}`},
		"GET /api/phong_hop/admin1/2": {status: http.StatusInternalServerError, body: `{"error":"boom"}`},
	})
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/admin1/rooms/1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodGet, "/console/admin1/rooms/2", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "boom", body.Error)
	assert.Equal(t, "response", body.Kind)

	w = serve(r, http.MethodGet, "/console/admin1/rooms/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoResponseIsGatewayTimeout(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := apiclient.NewWithHTTPClient(server.URL, nil, server.Client())
	server.Close()
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/admin1/assets/3/allocations", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apiclient.MsgNoResponse, body.Error)
}

func TestListBookings(t *testing.T) {
	_, client := newScriptedBackend(t, map[string]scripted{
		"GET /api/phong_hop/admin1":   {status: http.StatusOK, body: `{"status":"success","data":[{"id":5}]}`},
		"GET /api/phong_hop/admin1/5": {status: http.StatusOK, body: `{"status":"success","data":{"id":5,"ten_phong_hop":"Lotus"}}`},
		"GET /api/dat_phong/admin1":   {status: http.StatusOK, body: `{"status":"success","data":[{"id":1,"ten_dat_phong":"Sprint"}]}`},
	})
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/admin1/bookings?room_id=5&trang_thai=confirmed", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st struct {
		SelectedRoomID int64 `json:"selected_room_id"`
		Bookings       []struct {
			Title string `json:"ten_dat_phong"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, int64(5), st.SelectedRoomID)
	require.Len(t, st.Bookings, 1)
	assert.Equal(t, "Sprint", st.Bookings[0].Title)
}

func TestCreateAsset_IncompleteForm(t *testing.T) {
	sb, client := newScriptedBackend(t, nil)
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodPost, "/console/admin1/assets", `{"ma_tai_san":"TS01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, sb.seen("POST /api/tai_san/admin1"))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	sb, client := newScriptedBackend(t, map[string]scripted{
		"DELETE /api/tai_san/admin1/3": {status: http.StatusOK, body: `{"status":"success","message":"Đã xóa"}`},
		"GET /api/tai_san/admin1":      {status: http.StatusOK, body: `{"status":"success","data":[]}`},
	})
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodDelete, "/console/admin1/assets/3", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	var p confirm.Pending
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Bạn có chắc chắn muốn xóa tài sản này?", p.Prompt)
	assert.Zero(t, sb.seen("DELETE /api/tai_san/admin1/3"), "parking a delete must not reach the backend")

	w = serve(r, http.MethodPost, "/console/admin2/confirmations/"+p.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodPost, "/console/admin1/confirmations/"+p.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sb.seen("DELETE /api/tai_san/admin1/3"))

	w = serve(r, http.MethodPost, "/console/admin1/confirmations/"+p.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelDelete(t *testing.T) {
	sb, client := newScriptedBackend(t, nil)
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodDelete, "/console/admin1/bookings/9?room_id=2", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	var p confirm.Pending
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, int64(2), p.RoomID)

	w = serve(r, http.MethodDelete, "/console/admin1/confirmations/"+p.Token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(r, http.MethodPost, "/console/admin1/confirmations/"+p.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, sb.seen("DELETE /api/dat_phong/admin1/9"))
}

func TestExportAssets(t *testing.T) {
	_, client := newScriptedBackend(t, map[string]scripted{
		"GET /api/tai_san/admin1": {status: http.StatusOK, body: `{"status":"success","data":[{"id":1,"ma_tai_san":"TS01"}]}`},
	})
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/admin1/exports/assets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tai_san_admin1_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestAudit(t *testing.T) {
	_, client := newScriptedBackend(t, map[string]scripted{
		"PUT /api/phong_hop/admin1/4": {status: http.StatusOK, body: `{"status":"error","message":"Trùng tên"}`},
	})
	r := newTestRouter(t, client, newSQLiteStore(t, "api_audit"))

	form := `{"ten_phong_hop":"A","vi_tri":"B","suc_chua":5,"mo_ta":"C","don_vi_id":1}`
	w := serve(r, http.MethodPut, "/console/admin1/rooms/4", form)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodGet, "/console/admin1/audit?limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Entries []struct {
			Resource string `json:"resource"`
			Action   string `json:"action"`
			EntityID int64  `json:"entity_id"`
			Outcome  string `json:"outcome"`
			Message  string `json:"message"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Entries, 1)
	assert.Equal(t, "phong_hop", out.Entries[0].Resource)
	assert.Equal(t, "update", out.Entries[0].Action)
	assert.Equal(t, int64(4), out.Entries[0].EntityID)
	assert.Equal(t, "business_failure", out.Entries[0].Outcome)
	assert.Equal(t, "Trùng tên", out.Entries[0].Message)
}

func TestAudit_NoStore(t *testing.T) {
	_, client := newScriptedBackend(t, nil)
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/admin1/audit", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz(t *testing.T) {
	_, client := newScriptedBackend(t, nil)
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(Deps{DefaultTenant: "admin1"}), config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000})

	w := serve(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/console/admin1/rooms", w.Header().Get("Location"))
}

func TestExportAssets_QuotesFilename(t *testing.T) {
	_, client := newScriptedBackend(t, map[string]scripted{
		"GET /api/tai_san/ac;me": {status: http.StatusOK, body: `{"status":"success","data":[]}`},
	})
	r := newTestRouter(t, client, nil)

	w := serve(r, http.MethodGet, "/console/ac;me/exports/assets", "")
	require.Equal(t, http.StatusOK, w.Code)
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Regexp(t, `^tai_san_ac;me_\d{4}-\d{2}-\d{2}\.xlsx$`, params["filename"])
}
