package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"room-booking-console/internal/model"
)

// DefaultAuditLimit caps ListActions when the caller asks for no limit.
const DefaultAuditLimit = 100

// Store defines the interface for all database operations.
type Store interface {
	RecordAction(ctx context.Context, entry *model.AuditEntry) error
	ListActions(ctx context.Context, tenant string, limit int) ([]model.AuditEntry, error)

	PutSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForRoom(ctx context.Context, tenant string, roomID int64) ([]model.PushSubscription, error)

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RecordAction appends an audit entry.
func (s *gormStore) RecordAction(ctx context.Context, entry *model.AuditEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record %s %s for tenant %s: %w", entry.Action, entry.Resource, entry.Tenant, err)
	}
	return nil
}

// ListActions returns the newest audit entries of a tenant first.
func (s *gormStore) ListActions(ctx context.Context, tenant string, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}
	var entries []model.AuditEntry
	err := s.db.WithContext(ctx).
		Where("tenant = ?", tenant).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for tenant %s: %w", tenant, err)
	}
	return entries, nil
}

// PutSubscription creates or replaces a subscription together with the rooms it follows.
func (s *gormStore) PutSubscription(ctx context.Context, sub *model.PushSubscription, roomIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "tenant"}),
		}).Create(sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		if err := tx.Where("endpoint = ?", sub.Endpoint).Delete(&model.SubscriptionRoom{}).Error; err != nil {
			return fmt.Errorf("failed to clear subscribed rooms: %w", err)
		}

		rooms := make([]model.SubscriptionRoom, 0, len(roomIDs))
		seen := make(map[int64]bool, len(roomIDs))
		for _, id := range roomIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			rooms = append(rooms, model.SubscriptionRoom{Endpoint: sub.Endpoint, RoomID: id})
		}
		if len(rooms) > 0 {
			if err := tx.Create(&rooms).Error; err != nil {
				return fmt.Errorf("failed to save subscribed rooms: %w", err)
			}
		}
		sub.Rooms = rooms
		return nil
	})
}

// GetSubscription loads a subscription and its rooms. It returns
// gorm.ErrRecordNotFound when the endpoint is unknown.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).Preload("Rooms").First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription; its rooms go with it.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("endpoint = ?", endpoint).Delete(&model.SubscriptionRoom{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PushSubscription{Endpoint: endpoint}).Error
	})
}

// SubscriptionsForRoom finds the subscriptions of a tenant following roomID.
func (s *gormStore) SubscriptionsForRoom(ctx context.Context, tenant string, roomID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_rooms ON subscription_rooms.endpoint = push_subscriptions.endpoint").
		Where("push_subscriptions.tenant = ? AND subscription_rooms.room_id = ?", tenant, roomID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriptions for room %d: %w", roomID, err)
	}
	return subs, nil
}
