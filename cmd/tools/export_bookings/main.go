// Command export_bookings writes an owner's booking ledger to an xlsx
// file for offline reporting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository/postgres"
	"itemshare-api/pkg/exporter"

	"github.com/joho/godotenv"
)

func main() {
	ownerID := flag.Int64("owner-id", 0, "owner whose ledger to export")
	state := flag.String("state", "ALL", "booking state filter")
	out := flag.String("out", "bookings.xlsx", "output file path")
	flag.Parse()

	if *ownerID < 1 {
		fmt.Println("Usage: export_bookings --owner-id=... [--state=ALL] [--out=bookings.xlsx]")
		os.Exit(1)
	}
	st, ok := model.ParseState(*state)
	if !ok {
		log.Fatalf("unknown state %q", *state)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %v", err)
	}
	defer file.Close()

	summary, err := exporter.ExportBookings(ctx, postgres.NewStore(pool), file, exporter.Options{
		OwnerID: *ownerID,
		State:   st,
	})
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	fmt.Printf("Exported %d bookings to %s\n", summary.Rows, *out)
}
