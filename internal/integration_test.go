package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"room-booking-console/config"
	"room-booking-console/internal/api"
	"room-booking-console/internal/apiclient"
	"room-booking-console/internal/confirm"
	"room-booking-console/internal/db"
	"room-booking-console/internal/notification"
	"room-booking-console/internal/store"
)

// recordingSender captures pushes and answers with a fixed status.
type recordingSender struct {
	mu       sync.Mutex
	status   int
	payloads []notification.Payload
	got      chan struct{}
}

func (s *recordingSender) Send(payload []byte, _ *webpush.Subscription, _ *webpush.Options) (*http.Response, error) {
	var p notification.Payload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.payloads = append(s.payloads, p)
	status := s.status
	s.mu.Unlock()
	s.got <- struct{}{}
	rec := httptest.NewRecorder()
	rec.WriteHeader(status)
	return rec.Result(), nil
}

func (s *recordingSender) setStatus(code int) {
	s.mu.Lock()
	s.status = code
	s.mu.Unlock()
}

func (s *recordingSender) last() notification.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payloads[len(s.payloads)-1]
}

func waitPush(t *testing.T, s *recordingSender) {
	t.Helper()
	select {
	case <-s.got:
	case <-time.After(5 * time.Second):
		t.Fatal("no push was sent")
	}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestBookingLifecycle drives a booking from creation to confirmed deletion
// through the console routes and checks the audit log and push fan-out.
func TestBookingLifecycle(t *testing.T) {
	// --- Test Setup ---

	// 1. In-memory database for the audit log and subscriptions.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))
	s := store.NewGormStore(testDB)

	// 2. Fake booking backend.
	var mu sync.Mutex
	var calls []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.Method + " " + r.URL.Path {
		case "POST /api/dat_phong/admin1":
			w.Write([]byte(`{"status":"success","message":"Đặt phòng thành công","data":{"id":42}}`))
		case "GET /api/dat_phong/admin1":
			assert.Equal(t, "5", r.URL.Query().Get("phong_hop_id"))
			w.Write([]byte(`{"status":"success","data":[{"id":42,"ten_dat_phong":"Sprint review","phong_hop_id":5}]}`))
		case "DELETE /api/dat_phong/admin1/42":
			w.Write([]byte(`{"status":"success","message":"Đã xóa đặt phòng"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	defer backend.Close()

	// 3. Worker pool with a recording sender.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sender := &recordingSender{status: http.StatusCreated, got: make(chan struct{}, 8)}
	pool := notification.NewWorkerPool(1, 8, s, &webpush.Options{TTL: 60})
	pool.UseSender(sender)
	pool.Start(ctx)

	gin.SetMode(gin.TestMode)
	h := api.NewHandler(api.Deps{
		Backend:  apiclient.NewWithHTTPClient(backend.URL, nil, backend.Client()),
		Store:    s,
		Confirms: confirm.NewStore(time.Minute),
		Notifier: pool,
	})
	r := api.NewRouter(h, config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000})

	// --- Test Execution ---

	// Follow room 5.
	w := do(r, http.MethodPut, "/api/subscriptions",
		`{"endpoint":"https://push.example/abc","p256dh":"k","auth":"a","tenant":"admin1","subscribed_rooms":[5]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Create a booking in room 5.
	w = do(r, http.MethodPost, "/console/admin1/bookings", `{
		"ten_dat_phong":"Sprint review",
		"phong_hop_id":"5",
		"thoi_gian_bat_dau":"2026-10-20T09:00",
		"thoi_gian_ket_thuc":"2026-10-20T10:00",
		"muc_dich":"Demo"
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var st struct {
		Bookings []struct {
			ID int64 `json:"id"`
		} `json:"bookings"`
		Notices []struct {
			Level   string `json:"level"`
			Message string `json:"message"`
		} `json:"notices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Len(t, st.Bookings, 1)
	require.Len(t, st.Notices, 1)
	assert.Equal(t, "success", st.Notices[0].Level)
	assert.Equal(t, "Đặt phòng thành công", st.Notices[0].Message)

	waitPush(t, sender)
	created := sender.last()
	assert.Equal(t, "Đặt phòng mới", created.Title)
	assert.Equal(t, int64(42), created.BookingID)
	assert.Equal(t, int64(5), created.RoomID)

	// Ask to delete it; nothing reaches the backend until confirmed.
	w = do(r, http.MethodDelete, "/console/admin1/bookings/42?room_id=5", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	var pending confirm.Pending
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))

	mu.Lock()
	assert.NotContains(t, calls, "DELETE /api/dat_phong/admin1/42")
	mu.Unlock()

	// The push service now reports the subscription as gone.
	sender.setStatus(http.StatusGone)
	w = do(r, http.MethodPost, "/console/admin1/confirmations/"+pending.Token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	waitPush(t, sender)
	deleted := sender.last()
	assert.Equal(t, "Đặt phòng đã bị xóa", deleted.Title)
	assert.Equal(t, int64(42), deleted.BookingID)

	// --- Verification ---

	mu.Lock()
	assert.Contains(t, calls, "DELETE /api/dat_phong/admin1/42")
	mu.Unlock()

	entries, err := s.ListActions(ctx, "admin1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
	assert.Equal(t, int64(42), entries[1].EntityID)

	// The 410 removes the subscription.
	assert.Eventually(t, func() bool {
		subs, err := s.SubscriptionsForRoom(ctx, "admin1", 5)
		return err == nil && len(subs) == 0
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	pool.Wait()
}
