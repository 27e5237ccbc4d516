package model

import "time"

// PushSubscription holds a browser push subscription of a dashboard user.
// Verticals lists the dashboard verticals whose action outcomes are pushed;
// an empty list subscribes to all of them.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Verticals []string  `gorm:"serializer:json"`
	CreatedAt time.Time `gorm:"not null"`
}

// Wants reports whether the subscription covers the vertical.
func (p PushSubscription) Wants(vertical string) bool {
	if len(p.Verticals) == 0 {
		return true
	}
	for _, v := range p.Verticals {
		if v == vertical {
			return true
		}
	}
	return false
}
