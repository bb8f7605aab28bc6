package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
)

func TestStartOfWeek(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Wednesday
		{time.Date(2026, 10, 14, 15, 30, 0, 0, loc), time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		// Monday
		{time.Date(2026, 10, 12, 0, 0, 0, 0, loc), time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		// Sunday belongs to the week that started six days earlier
		{time.Date(2026, 10, 18, 23, 59, 0, 0, loc), time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		// across a month boundary
		{time.Date(2026, 11, 1, 9, 0, 0, 0, loc), time.Date(2026, 10, 26, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StartOfWeek(tc.now), tc.now.String())
	}
}

func TestAdjustToCurrentWeek(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC) // Saturday

	slots := []Slot{
		{
			Title: "Physio",
			Day:   entity.Wednesday,
			Start: time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		},
		{
			// no day: weekday taken from the stored start (a Tuesday)
			Title: "Breakfast",
			Start: time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC),
		},
		{
			Title: "Night check",
			Day:   entity.Friday,
			Start: time.Date(2025, 3, 4, 23, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 5, 1, 0, 0, 0, time.UTC),
		},
	}

	got := AdjustToCurrentWeek(slots, now)
	require.Len(t, got, 3)

	assert.Equal(t, "Breakfast", got[0].Title)
	assert.Equal(t, time.Date(2026, 10, 13, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC), got[0].End)

	assert.Equal(t, "Physio", got[1].Title)
	assert.Equal(t, time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC), got[1].End)

	assert.Equal(t, "Night check", got[2].Title)
	assert.Equal(t, time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC), got[2].Start)
	assert.Equal(t, time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC), got[2].End)
}

func TestAdjustToCurrentWeek_SundayStart(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	got := AdjustToCurrentWeek([]Slot{{Title: "Chapel", Start: sunday, End: sunday.Add(time.Hour)}}, now)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC), got[0].Start)
}

func TestAdjustToCurrentWeek_Empty(t *testing.T) {
	got := AdjustToCurrentWeek(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
