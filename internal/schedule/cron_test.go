package schedule

import (
	"testing"
	"time"
)

func TestNextFire_EveryFiveMinutes(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 2, 0, 0, time.UTC)

	next, err := NextFire("*/5 * * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextFire_Hourly(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	next, err := NextFire("0 * * * *", from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextFire_InvalidExpression(t *testing.T) {
	if _, err := NextFire("not a cron", time.Now()); err == nil {
		t.Fatal("expected error for invalid expression")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("*/5 * * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Validate("61 * * * *"); err == nil {
		t.Error("expected error for out-of-range minute")
	}
}
