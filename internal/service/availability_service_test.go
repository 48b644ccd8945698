package service

import (
	"context"
	"testing"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/daterange"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	site := f.addSite(4, "50000")

	a := f.addReservation(models.Reservation{
		SiteID: site.ID, UserID: 7, Status: models.StatusApproved,
		CheckInDate: ms("2025-06-01T00:00:00Z"), CheckOutDate: ms("2025-06-03T00:00:00Z"),
	})
	f.addReservation(models.Reservation{
		SiteID: site.ID, UserID: 7, Status: models.StatusPending,
		CheckInDate: ms("2025-06-10T00:00:00Z"), CheckOutDate: ms("2025-06-12T00:00:00Z"),
	})
	// inert reservations never block
	f.addReservation(models.Reservation{
		SiteID: site.ID, UserID: 7, Status: models.StatusCancelled,
		CheckInDate: ms("2025-06-05T00:00:00Z"), CheckOutDate: ms("2025-06-07T00:00:00Z"),
	})
	f.addReservation(models.Reservation{
		SiteID: site.ID, UserID: 7, Status: models.StatusRejected,
		CheckInDate: ms("2025-06-05T00:00:00Z"), CheckOutDate: ms("2025-06-07T00:00:00Z"),
	})

	cases := []struct {
		name     string
		in, out  string
		expected bool
	}{
		{"adjacent after A", "2025-06-03T00:00:00Z", "2025-06-05T00:00:00Z", true},
		{"overlaps A", "2025-06-02T00:00:00Z", "2025-06-04T00:00:00Z", false},
		{"between A and B", "2025-06-04T00:00:00Z", "2025-06-08T00:00:00Z", true},
		{"covers B", "2025-06-09T00:00:00Z", "2025-06-13T00:00:00Z", false},
		{"ends at A check-in", "2025-05-30T00:00:00Z", "2025-06-01T00:00:00Z", true},
		{"inside A", "2025-06-01T12:00:00Z", "2025-06-02T00:00:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := f.availability.IsAvailable(ctx, site.ID, ms(tc.in), ms(tc.out), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}

	t.Run("exclude own reservation", func(t *testing.T) {
		ok, err := f.availability.IsAvailable(ctx, site.ID, ms("2025-06-02T00:00:00Z"), ms("2025-06-04T00:00:00Z"), &a.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other site unaffected", func(t *testing.T) {
		s2 := f.addSite(2, "30000")
		ok, err := f.availability.IsAvailable(ctx, s2.ID, ms("2025-06-01T00:00:00Z"), ms("2025-06-03T00:00:00Z"), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestIsAvailable_InvalidRange(t *testing.T) {
	f := newFixture()
	site := f.addSite(4, "50000")

	_, err := f.availability.IsAvailable(context.Background(), site.ID, ms("2025-06-03T00:00:00Z"), ms("2025-06-03T00:00:00Z"), nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestCheckSites(t *testing.T) {
	f := newFixture()
	booked := f.addSite(4, "50000")
	free := f.addSite(4, "50000")
	inactive := f.addSite(4, "50000")
	inactive.IsActive = false
	f.db.sites[inactive.ID] = *inactive

	f.addReservation(models.Reservation{
		SiteID: booked.ID, Status: models.StatusPending,
		CheckInDate: ms("2025-07-01T00:00:00Z"), CheckOutDate: ms("2025-07-04T00:00:00Z"),
	})

	got, err := f.availability.CheckSites(context.Background(), ms("2025-07-02T00:00:00Z"), ms("2025-07-03T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	byID := map[uint]bool{}
	for _, a := range got {
		byID[a.Site.ID] = a.Available
	}
	assert.False(t, byID[booked.ID])
	assert.True(t, byID[free.ID])
	assert.NotContains(t, byID, inactive.ID)
}
