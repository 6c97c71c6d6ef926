package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusAggregatesChecks(t *testing.T) {
	svc := NewService(map[string]Check{
		"store":   func(context.Context) error { return nil },
		"uploads": func(context.Context) error { return errors.New("missing") },
	})

	ok, details := svc.Status(context.Background())
	if ok {
		t.Fatalf("expected not ok")
	}
	if details["store"] != "ok" {
		t.Fatalf("unexpected store status %q", details["store"])
	}
	if details["uploads"] != "missing" {
		t.Fatalf("unexpected uploads status %q", details["uploads"])
	}
}

func TestStatusWithoutChecksIsOK(t *testing.T) {
	ok, details := NewService(nil).Status(context.Background())
	if !ok || len(details) != 0 {
		t.Fatalf("expected ok with no details, got %v %v", ok, details)
	}
}
