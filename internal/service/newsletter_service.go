package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/mailer"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
)

// NewsletterService manages newsletter subscriptions.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string, name *string) (model.SubscriptionOutcome, error)
	Unsubscribe(ctx context.Context, email string) error
	ListActive(ctx context.Context) ([]model.Subscriber, error)
}

type newsletterService struct {
	repo   repository.SubscriberRepository
	mailer mailer.Mailer
	log    *zap.Logger
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(repo repository.SubscriberRepository, m mailer.Mailer, log *zap.Logger) NewsletterService {
	return &newsletterService{
		repo:   repo,
		mailer: m,
		log:    log,
	}
}

// Subscribe adds or reactivates a subscriber and sends a welcome mail.
// A failed mail is logged and does not fail the subscription.
func (s *newsletterService) Subscribe(ctx context.Context, email string, name *string) (model.SubscriptionOutcome, error) {
	outcome, err := s.repo.Subscribe(ctx, email, name)
	if err != nil {
		return 0, fmt.Errorf("subscribe: %w", err)
	}
	if outcome == model.SubscriptionAlreadyActive {
		return outcome, apperrors.ErrAlreadySubscribed
	}

	if err := s.mailer.SendWelcome(ctx, email, name); err != nil {
		s.log.Warn("welcome mail failed", zap.String("email", email), zap.Error(err))
	}
	return outcome, nil
}

// Unsubscribe deactivates the subscriber. Repeating it on an inactive email succeeds.
func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	found, err := s.repo.Unsubscribe(ctx, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if !found {
		return apperrors.ErrSubscriberNotFound
	}
	return nil
}

func (s *newsletterService) ListActive(ctx context.Context) ([]model.Subscriber, error) {
	return s.repo.ListActive(ctx)
}
