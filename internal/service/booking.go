package service

import (
	"context"

	"room-booking-console/internal/apiclient"
)

// BookingService wraps the backend booking endpoints of one tenant.
type BookingService struct {
	c collection
}

// NewBookingService creates a booking service bound to tenant.
func NewBookingService(client Requester, tenant string) *BookingService {
	return &BookingService{c: collection{client: client, basePath: BookingBasePath, tenant: tenant, filterKeys: BookingFilterKeys}}
}

// List returns the bookings matching filters.
func (s *BookingService) List(ctx context.Context, filters Filters) (*apiclient.Envelope, error) {
	return s.c.list(ctx, filters)
}

// GetByID has no detail endpoint to call; it filters the list by id.
func (s *BookingService) GetByID(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.listByID(ctx, id)
}

// FindOne returns a single booking.
func (s *BookingService) FindOne(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	env, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return firstOf(env)
}

func (s *BookingService) Create(ctx context.Context, data any) (*apiclient.Envelope, error) {
	return s.c.create(ctx, data)
}

func (s *BookingService) Update(ctx context.Context, id int64, data any) (*apiclient.Envelope, error) {
	return s.c.update(ctx, id, data)
}

func (s *BookingService) Delete(ctx context.Context, id int64) (*apiclient.Envelope, error) {
	return s.c.delete(ctx, id)
}
