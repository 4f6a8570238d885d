package exporter

import (
	"bytes"
	"context"
	"testing"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"
	"itemshare-api/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
)

var exportNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) (*repository.Store, int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner := &model.User{Name: "owner", Email: "owner@example.com"}
	require.NoError(t, store.Users.Create(ctx, owner))
	booker := &model.User{Name: "booker", Email: "booker@example.com"}
	require.NoError(t, store.Users.Create(ctx, booker))

	item := &model.Item{Name: "drill", Description: "cordless", Available: true, OwnerID: owner.ID}
	require.NoError(t, store.Items.Create(ctx, item))

	for i, status := range []model.BookingStatus{model.StatusApproved, model.StatusWaiting} {
		b := &model.Booking{
			Start:    exportNow.Add(time.Duration(i+1) * time.Hour),
			End:      exportNow.Add(time.Duration(i+2) * time.Hour),
			ItemID:   item.ID,
			BookerID: booker.ID,
			Status:   status,
		}
		require.NoError(t, store.Bookings.Create(ctx, b))
	}
	return store, owner.ID
}

func TestExportBookings(t *testing.T) {
	store, ownerID := seed(t)

	var buf bytes.Buffer
	summary, err := ExportBookings(context.Background(), store, &buf, Options{
		OwnerID: ownerID,
		Now:     exportNow,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Rows)

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := file.Sheet["Bookings"]
	require.True(t, ok)
	// Header plus one row per booking.
	assert.Equal(t, 3, sheet.MaxRow)

	row, err := sheet.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "drill", row.GetCell(1).Value)
	assert.Equal(t, "booker", row.GetCell(2).Value)
}

func TestExportBookingsStateFilter(t *testing.T) {
	store, ownerID := seed(t)

	var buf bytes.Buffer
	summary, err := ExportBookings(context.Background(), store, &buf, Options{
		OwnerID: ownerID,
		State:   model.StateWaiting,
		Now:     exportNow,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rows)
}

func TestExportBookingsUnknownOwner(t *testing.T) {
	store := memory.NewStore()
	var buf bytes.Buffer
	_, err := ExportBookings(context.Background(), store, &buf, Options{OwnerID: 42})
	assert.Error(t, err)
}
