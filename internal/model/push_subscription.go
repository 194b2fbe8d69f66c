package model

import "time"

// PushSubscription holds the information for a browser push subscription
// of a console user.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Tenant    string    `gorm:"size:64;index;not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Rooms []SubscriptionRoom `gorm:"foreignKey:Endpoint;references:Endpoint;constraint:OnDelete:CASCADE"`
}

// SubscriptionRoom maps a subscription to a backend room it follows.
type SubscriptionRoom struct {
	Endpoint string `gorm:"primaryKey"`
	RoomID   int64  `gorm:"primaryKey;autoIncrement:false"`
}
