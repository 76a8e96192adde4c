package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

// SubscriberRepository defines newsletter persistence operations.
type SubscriberRepository interface {
	Subscribe(ctx context.Context, email string, name *string) (model.SubscriptionOutcome, error)
	Unsubscribe(ctx context.Context, email string) (found bool, err error)
	ListActive(ctx context.Context) ([]model.Subscriber, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository.
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

// Subscribe inserts a new active subscriber or reactivates an inactive one.
// Like Upsert on ratings, the existence check and the write are not atomic.
func (r *subscriberRepository) Subscribe(ctx context.Context, email string, name *string) (model.SubscriptionOutcome, error) {
	db := r.db.WithContext(ctx)

	var existing model.Subscriber
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := model.Subscriber{Email: email, Name: name, IsActive: true}
		if err := db.Create(&sub).Error; err != nil {
			return 0, err
		}
		return model.SubscriptionCreated, nil
	case err != nil:
		return 0, err
	case existing.IsActive:
		return model.SubscriptionAlreadyActive, nil
	}

	err = db.Model(&model.Subscriber{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{"is_active": true, "name": name}).Error
	if err != nil {
		return 0, err
	}
	return model.SubscriptionReactivated, nil
}

// Unsubscribe clears the active flag. found reports whether any row carries the email,
// whatever its previous state.
func (r *subscriberRepository) Unsubscribe(ctx context.Context, email string) (bool, error) {
	db := r.db.WithContext(ctx)

	res := db.Model(&model.Subscriber{}).
		Where("email = ? AND is_active = ?", email, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Already inactive rows are not counted as affected.
	var count int64
	if err := db.Model(&model.Subscriber{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive returns active subscribers, most recent first.
func (r *subscriberRepository) ListActive(ctx context.Context) ([]model.Subscriber, error) {
	subscribers := []model.Subscriber{}
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("subscribed_at DESC, id DESC").
		Find(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}
