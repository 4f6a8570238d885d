package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusSerializesDecisions(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	b := &model.Booking{
		Start:    time.Now().Add(time.Hour),
		End:      time.Now().Add(2 * time.Hour),
		ItemID:   1,
		BookerID: 1,
		Status:   model.StatusWaiting,
	}
	require.NoError(t, store.Bookings.Create(ctx, b))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		status := model.StatusApproved
		if i%2 == 1 {
			status = model.StatusRejected
		}
		wg.Add(1)
		go func(to model.BookingStatus) {
			defer wg.Done()
			results <- store.Bookings.UpdateStatus(ctx, b.ID, model.StatusWaiting, to)
		}(status)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, repository.ErrConcurrentModification):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)

	got, err := store.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, model.StatusWaiting, got.Status)
}

func TestUpdateStatusMissingBooking(t *testing.T) {
	store := NewStore()
	err := store.Bookings.UpdateStatus(context.Background(), 42, model.StatusWaiting, model.StatusApproved)
	assert.ErrorIs(t, err, repository.ErrConcurrentModification)
}

func TestLastAndNextForItemIgnoreUndecided(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	mk := func(startOff, endOff time.Duration, status model.BookingStatus) *model.Booking {
		b := &model.Booking{Start: now.Add(startOff), End: now.Add(endOff), ItemID: 7, BookerID: 2, Status: status}
		require.NoError(t, store.Bookings.Create(ctx, b))
		return b
	}

	older := mk(-4*time.Hour, -3*time.Hour, model.StatusApproved)
	last := mk(-2*time.Hour, -time.Hour, model.StatusApproved)
	mk(-30*time.Minute, 30*time.Minute, model.StatusWaiting)
	next := mk(time.Hour, 2*time.Hour, model.StatusApproved)
	mk(30*time.Minute, 45*time.Minute, model.StatusRejected)

	gotLast, err := store.Bookings.LastForItem(ctx, 7, now)
	require.NoError(t, err)
	require.NotNil(t, gotLast)
	assert.Equal(t, last.ID, gotLast.ID)
	assert.NotEqual(t, older.ID, gotLast.ID)

	gotNext, err := store.Bookings.NextForItem(ctx, 7, now)
	require.NoError(t, err)
	require.NotNil(t, gotNext)
	assert.Equal(t, next.ID, gotNext.ID)
}
