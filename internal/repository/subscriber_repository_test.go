package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/dbtest"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

func TestSubscriberRepository_Lifecycle(t *testing.T) {
	db := dbtest.New(t)
	repo := NewSubscriberRepository(db)
	ctx := context.Background()

	outcome, err := repo.Subscribe(ctx, "news@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionCreated, outcome)

	outcome, err = repo.Subscribe(ctx, "news@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionAlreadyActive, outcome)

	found, err := repo.Unsubscribe(ctx, "news@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Unsubscribe(ctx, "news@example.com")
	require.NoError(t, err)
	assert.True(t, found, "an inactive row still counts as found")

	outcome, err = repo.Subscribe(ctx, "news@example.com", strPtr("Reader"))
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionReactivated, outcome)

	var rows []model.Subscriber
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsActive)
	assert.Equal(t, "Reader", *rows[0].Name)
}

func TestSubscriberRepository_UnsubscribeUnknown(t *testing.T) {
	repo := NewSubscriberRepository(dbtest.New(t))

	found, err := repo.Unsubscribe(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSubscriberRepository_ListActive(t *testing.T) {
	repo := NewSubscriberRepository(dbtest.New(t))
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := repo.Subscribe(ctx, email, nil)
		require.NoError(t, err)
	}
	_, err := repo.Unsubscribe(ctx, "b@example.com")
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "c@example.com", active[0].Email)
	assert.Equal(t, "a@example.com", active[1].Email)
}
