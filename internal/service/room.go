package service

import (
	"context"

	"room-booking-console/internal/apiclient"
)

// RoomService wraps the backend meeting-room endpoints of one tenant.
type RoomService struct {
	c collection
}

// NewRoomService creates a room service bound to tenant.
func NewRoomService(client Requester, tenant string) *RoomService {
	return &RoomService{c: collection{client: client, basePath: RoomBasePath, tenant: tenant, filterKeys: RoomFilterKeys}}
}

// List returns the rooms matching filters.
func (s *RoomService) List(ctx context.Context, filters Filters) (*apiclient.Envelope, error) {
	return s.c.list(ctx, filters)
}

// GetByID reads the room detail endpoint (assets and bookings included).
func (s *RoomService) GetByID(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.detail(ctx, id)
}

// FindOne is GetByID; rooms have a real detail endpoint.
func (s *RoomService) FindOne(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.GetByID(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, data any) (*apiclient.Envelope, error) {
	return s.c.create(ctx, data)
}

func (s *RoomService) Update(ctx context.Context, id int64, data any) (*apiclient.Envelope, error) {
	return s.c.update(ctx, id, data)
}

func (s *RoomService) Delete(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.delete(ctx, id)
}
