package model

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

func TestReservationValidation(t *testing.T) {
	base := func(t *testing.T) Reservation {
		return Reservation{
			ListingID: "665f1f77bcf86cd799439011",
			ClientID:  "665f1f77bcf86cd799439022",
			StartDate: day(t, "2024-06-01"),
			EndDate:   day(t, "2024-06-05"),
			Status:    StatusPending,
		}
	}

	t.Run("valid", func(t *testing.T) {
		r := base(t)
		if err := validate.Struct(r); err != nil {
			t.Errorf("expected valid reservation, got %v", err)
		}
	})

	t.Run("end equal to start", func(t *testing.T) {
		r := base(t)
		r.EndDate = r.StartDate
		if err := validate.Struct(r); err == nil {
			t.Error("expected gtfield violation")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		r := base(t)
		r.EndDate = day(t, "2024-05-30")
		if err := validate.Struct(r); err == nil {
			t.Error("expected gtfield violation")
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		r := base(t)
		r.Status = "paused"
		if err := validate.Struct(r); err == nil {
			t.Error("expected oneof violation")
		}
	})

	t.Run("malformed listing id", func(t *testing.T) {
		r := base(t)
		r.ListingID = "not-an-object-id"
		if err := validate.Struct(r); err == nil {
			t.Error("expected mongodb violation")
		}
	})
}

func TestListingValidation(t *testing.T) {
	base := Listing{
		HostID:       "665f1f77bcf86cd799439055",
		Title:        "Riad Dar Anya",
		Address:      "12 Derb el Ferrane",
		City:         "Marrakech",
		Category:     "riad",
		NightlyPrice: 85,
	}

	t.Run("valid", func(t *testing.T) {
		if err := validate.Struct(base); err != nil {
			t.Errorf("expected valid listing, got %v", err)
		}
	})

	t.Run("zero price", func(t *testing.T) {
		l := base
		l.NightlyPrice = 0
		if err := validate.Struct(l); err == nil {
			t.Error("expected gt violation for zero price")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		l := base
		l.NightlyPrice = -5
		if err := validate.Struct(l); err == nil {
			t.Error("expected gt violation for negative price")
		}
	})
}

func TestReviewValidation(t *testing.T) {
	base := Review{
		ListingID: "665f1f77bcf86cd799439011",
		ClientID:  "665f1f77bcf86cd799439022",
		Rating:    4,
		Comment:   "Great stay",
	}

	t.Run("valid", func(t *testing.T) {
		if err := validate.Struct(base); err != nil {
			t.Errorf("expected valid review, got %v", err)
		}
	})

	for _, rating := range []int{0, 6} {
		r := base
		r.Rating = rating
		if err := validate.Struct(r); err == nil {
			t.Errorf("expected rating %d to be rejected", rating)
		}
	}

	t.Run("empty comment", func(t *testing.T) {
		r := base
		r.Comment = ""
		if err := validate.Struct(r); err == nil {
			t.Error("expected required violation for empty comment")
		}
	})
}

func TestRole(t *testing.T) {
	tests := []struct {
		role       Role
		valid      bool
		collection string
	}{
		{RoleClient, true, "Clients"},
		{RoleHost, true, "Hosts"},
		{Role("admin"), false, ""},
		{Role(""), false, ""},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.valid {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.valid)
		}
		coll, ok := tt.role.Collection()
		if tt.valid && (!ok || coll != tt.collection) {
			t.Errorf("Role(%q).Collection() = %q, %v; want %q", tt.role, coll, ok, tt.collection)
		}
		if !tt.valid && ok {
			t.Errorf("Role(%q).Collection() should not resolve", tt.role)
		}
	}
}

func TestReservationTerminal(t *testing.T) {
	for status, want := range map[string]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCancelled: true,
	} {
		r := Reservation{Status: status}
		if got := r.Terminal(); got != want {
			t.Errorf("Terminal() for %s = %v, want %v", status, got, want)
		}
	}
}
