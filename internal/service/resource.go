package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"room-booking-console/internal/apiclient"
)

// Backend base paths. The tenant is appended as the next path segment.
const (
	BookingBasePath           = "/api/dat_phong"
	RoomBasePath              = "/api/phong_hop"
	AssetBasePath             = "/api/tai_san"
	AllocationHistoryBasePath = "/api/lich_su_cap_phat"
)

// ErrNotFound is returned by FindOne when the backend has no such entity.
var ErrNotFound = errors.New("không tìm thấy dữ liệu")

// Requester performs one backend call. *apiclient.Client implements it.
type Requester interface {
	Do(ctx context.Context, method, path, query string, body any) (*apiclient.Envelope, error)
}

// Resource is the contract shared by the booking, room and asset services.
type Resource interface {
	List(ctx context.Context, filters Filters) (*apiclient.Envelope, error)
	GetByID(ctx context.Context, id int64) (*apiclient.Envelope, error)
	FindOne(ctx context.Context, id int64) (*apiclient.Envelope, error)
	Create(ctx context.Context, data any) (*apiclient.Envelope, error)
	Update(ctx context.Context, id int64, data any) (*apiclient.Envelope, error)
	Delete(ctx context.Context, id int64) (*apiclient.Envelope, error)
}

var (
	_ Resource = (*BookingService)(nil)
	_ Resource = (*RoomService)(nil)
	_ Resource = (*AssetService)(nil)
)

// collection binds one resource family to a tenant.
type collection struct {
	client     Requester
	basePath   string
	tenant     string
	filterKeys []string
}

func (c collection) path() string {
	return c.basePath + "/" + url.PathEscape(c.tenant)
}

func (c collection) itemPath(id int64) string {
	return c.path() + "/" + strconv.FormatInt(id, 10)
}

func (c collection) list(ctx context.Context, filters Filters) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodGet, c.path(), filters.Query(c.filterKeys), nil)
}

// detail reads the dedicated item endpoint.
func (c collection) detail(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodGet, c.itemPath(id), "", nil)
}

// listByID reads the list endpoint filtered by id, for resources without a detail endpoint.
func (c collection) listByID(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodGet, c.path(), "id="+strconv.FormatInt(id, 10), nil)
}

func (c collection) create(ctx context.Context, data any) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodPost, c.path(), "", data)
}

func (c collection) update(ctx context.Context, id int64, data any) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodPut, c.itemPath(id), "", data)
}

func (c collection) delete(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return c.client.Do(ctx, http.MethodDelete, c.itemPath(id), "", nil)
}

// firstOf narrows a list envelope to its first element.
func firstOf(env *apiclient.Envelope) (*apiclient.Envelope, error) {
	if !env.OK() {
		return env, nil
	}
	var items []json.RawMessage
	if err := env.DecodeData(&items); err != nil {
		// Some deployments already answer ?id= with a single object.
		return env, nil
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &apiclient.Envelope{Status: env.Status, Data: items[0], Message: env.Message}, nil
}
