// Package exporter renders booking ledgers as Excel workbooks for
// offline reporting.
package exporter

import (
	"context"
	"fmt"
	"io"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"

	"github.com/tealeg/xlsx/v3"
)

// Options configures an export run.
type Options struct {
	// OwnerID selects whose item ledger to export.
	OwnerID int64
	// State filters the ledger; empty means ALL.
	State model.State
	// Now is the classification instant for the state predicates.
	Now time.Time
}

// Summary reports what an export produced.
type Summary struct {
	Rows int `json:"rows"`
}

const pageSize = 500

var header = []string{"Booking ID", "Item", "Booker", "Booker Email", "Start", "End", "Status"}

// ExportBookings writes the owner's booking ledger as an xlsx workbook.
func ExportBookings(ctx context.Context, store *repository.Store, w io.Writer, opts Options) (Summary, error) {
	var summary Summary

	if opts.State == "" {
		opts.State = model.StateAll
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	owner, err := store.Users.GetByID(ctx, opts.OwnerID)
	if err != nil {
		return summary, fmt.Errorf("get owner: %w", err)
	}
	if owner == nil {
		return summary, fmt.Errorf("owner %d not found", opts.OwnerID)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bookings")
	if err != nil {
		return summary, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().SetString(h)
	}

	for offset := 0; ; offset += pageSize {
		page, err := store.Bookings.ListByOwner(ctx, opts.OwnerID, repository.BookingFilter{
			State:  opts.State,
			Now:    opts.Now,
			Limit:  pageSize,
			Offset: offset,
		})
		if err != nil {
			return summary, fmt.Errorf("list bookings: %w", err)
		}
		for _, b := range page {
			if err := addBookingRow(ctx, store, sheet, b); err != nil {
				return summary, err
			}
			summary.Rows++
		}
		if len(page) < pageSize {
			break
		}
	}

	if err := file.Write(w); err != nil {
		return summary, fmt.Errorf("write workbook: %w", err)
	}
	return summary, nil
}

func addBookingRow(ctx context.Context, store *repository.Store, sheet *xlsx.Sheet, b *model.Booking) error {
	item, err := store.Items.GetByID(ctx, b.ItemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	booker, err := store.Users.GetByID(ctx, b.BookerID)
	if err != nil {
		return fmt.Errorf("get booker: %w", err)
	}

	itemName := ""
	if item != nil {
		itemName = item.Name
	}
	bookerName, bookerEmail := "", ""
	if booker != nil {
		bookerName, bookerEmail = booker.Name, booker.Email
	}

	row := sheet.AddRow()
	row.AddCell().SetInt64(b.ID)
	row.AddCell().SetString(itemName)
	row.AddCell().SetString(bookerName)
	row.AddCell().SetString(bookerEmail)
	row.AddCell().SetString(b.Start.Format(time.RFC3339))
	row.AddCell().SetString(b.End.Format(time.RFC3339))
	row.AddCell().SetString(string(b.Status))
	return nil
}
