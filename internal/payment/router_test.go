package payment

import (
	"context"
	"testing"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

func TestRouteUnknownMethod(t *testing.T) {
	r := NewRouter()
	if _, err := r.Route("voucher", 100, "REZ20250601-001", nil); err != ErrUnknownMethod {
		t.Fatalf("got %v, want ErrUnknownMethod", err)
	}
}

func TestRouteOpensMatchingConfirmer(t *testing.T) {
	r := NewRouter()
	for _, m := range []model.PaymentMethod{model.PayCash, model.PayCard, model.PayTransfer} {
		conf, err := r.Route(m, 250, "REZ20250601-002", nil)
		if err != nil {
			t.Fatalf("Route(%s) failed: %v", m, err)
		}
		if conf.Method != m {
			t.Fatalf("Route(%s) opened a %s confirmation", m, conf.Method)
		}
		if conf.Amount != 250 || conf.Code != "REZ20250601-002" {
			t.Fatalf("confirmation lost amount/code: %+v", conf)
		}
		if conf.Token == "" {
			t.Fatal("confirmation has no token")
		}
	}
}

func TestCompleteFiresCallbackExactlyOnce(t *testing.T) {
	r := NewRouter()
	fired := 0
	conf, err := r.Route(model.PayCard, 300, "REZ20250601-003", func(context.Context) error {
		fired++
		return nil
	})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if err := r.Complete(context.Background(), conf.Token); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if err := r.Complete(context.Background(), conf.Token); err != ErrUnknownConfirmation {
		t.Fatalf("second Complete: got %v, want ErrUnknownConfirmation", err)
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
}

func TestDismissFiresNothing(t *testing.T) {
	r := NewRouter()
	fired := 0
	conf, err := r.Route(model.PayTransfer, 300, "REZ20250601-004", func(context.Context) error {
		fired++
		return nil
	})
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if err := r.Dismiss(conf.Token); err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}
	if fired != 0 {
		t.Fatalf("dismiss fired the completion callback %d times", fired)
	}
	if err := r.Complete(context.Background(), conf.Token); err != ErrUnknownConfirmation {
		t.Fatalf("Complete after dismiss: got %v, want ErrUnknownConfirmation", err)
	}
}
