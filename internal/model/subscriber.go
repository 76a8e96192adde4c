package model

import "time"

// Subscriber is a newsletter recipient. Unsubscribing clears IsActive; rows are never deleted.
type Subscriber struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         *string   `json:"name" gorm:"size:255"`
	IsActive     bool      `json:"is_active" gorm:"not null;index"`
	SubscribedAt time.Time `json:"subscribed_at" gorm:"autoCreateTime;index"`
}

// TableName overrides the default table name.
func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}

// SubscriptionOutcome is the result of a subscribe request.
type SubscriptionOutcome int

const (
	// SubscriptionCreated means a new subscriber row was inserted.
	SubscriptionCreated SubscriptionOutcome = iota + 1
	// SubscriptionReactivated means an inactive row was switched back on.
	SubscriptionReactivated
	// SubscriptionAlreadyActive means nothing changed.
	SubscriptionAlreadyActive
)
