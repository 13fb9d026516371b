package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

var codePattern = regexp.MustCompile(`^REZ\d{8}-\d{3}$`)

func TestGenerateCodeFormat(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	code := GenerateCode(now)
	if !codePattern.MatchString(code) {
		t.Fatalf("code %q does not match REZ<YYYYMMDD>-<3 digits>", code)
	}
	if code[:11] != "REZ20250601" {
		t.Fatalf("code %q does not carry the generation date", code)
	}
}

func TestGenerateCodeTimestampSuffix(t *testing.T) {
	now := time.UnixMilli(1748787427123).UTC()
	code := GenerateCode(now)
	if got := code[len(code)-3:]; got != "123" {
		t.Fatalf("code %q should end with the last 3 digits of the millisecond clock, got %q", code, got)
	}
}

func TestUniqueCodeRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	seed := GenerateCode(now)
	if err := store.Add(ctx, &model.Reservation{
		Code:      seed,
		ClientID:  1,
		VehicleID: 1,
		Status:    model.ReservationPending,
	}); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	code, err := UniqueCode(ctx, store, now)
	if err != nil {
		t.Fatalf("UniqueCode failed: %v", err)
	}
	if code == seed {
		t.Fatalf("UniqueCode returned the colliding code %q", code)
	}
	if !codePattern.MatchString(code) {
		t.Fatalf("retried code %q lost its format", code)
	}
}

// The store is the last line of defense against a duplicate code: Add
// must reject it instead of storing two reservations under one code.
func TestStoreRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first := &model.Reservation{Code: "REZ20250601-111", ClientID: 1, VehicleID: 1, Status: model.ReservationPending}
	if err := store.Add(ctx, first); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	second := &model.Reservation{Code: "REZ20250601-111", ClientID: 2, VehicleID: 2, Status: model.ReservationPending}
	if err := store.Add(ctx, second); err != ErrDuplicateCode {
		t.Fatalf("duplicate add: got %v, want ErrDuplicateCode", err)
	}
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("store holds %d reservations after duplicate add, want 1", len(items))
	}
}
