package service

import (
	"context"

	"room-booking-console/internal/apiclient"
)

// AssetService wraps the backend asset endpoints of one tenant, including
// the allocation history resource.
type AssetService struct {
	c       collection
	history collection
}

// NewAssetService creates an asset service bound to tenant.
func NewAssetService(client Requester, tenant string) *AssetService {
	return &AssetService{
		c:       collection{client: client, basePath: AssetBasePath, tenant: tenant, filterKeys: AssetFilterKeys},
		history: collection{client: client, basePath: AllocationHistoryBasePath, tenant: tenant, filterKeys: AllocationHistoryFilterKeys},
	}
}

// List returns the assets matching filters.
func (s *AssetService) List(ctx context.Context, filters Filters) (*apiclient.Envelope, error) {
	return s.c.list(ctx, filters)
}

// GetByID filters the list by id; the backend has no asset detail endpoint.
func (s *AssetService) GetByID(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.listByID(ctx, id)
}

// FindOne returns a single asset.
func (s *AssetService) FindOne(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	env, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return firstOf(env)
}

func (s *AssetService) Create(ctx context.Context, data any) (*apiclient.Envelope, error) {
	return s.c.create(ctx, data)
}

func (s *AssetService) Update(ctx context.Context, id int64, data any) (*apiclient.Envelope, error) {
	return s.c.update(ctx, id, data)
}

func (s *AssetService) Delete(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.delete(ctx, id)
}

// AllocationHistory returns issue/return records matching filters.
func (s *AssetService) AllocationHistory(ctx context.Context, filters Filters) (*apiclient.Envelope, error) {
	return s.history.list(ctx, filters)
}
