package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babysafety/internal/stats"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := stats.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestAgeInMonths(t *testing.T) {
	tests := []struct {
		name       string
		birth, now string
		want       int
	}{
		{"six months", "2024-01-01", "2024-07-01", 6},
		{"same month", "2024-03-31", "2024-03-01", 0},
		{"ignores day of month", "2024-01-31", "2024-02-01", 1},
		{"across years", "2022-11-15", "2024-02-10", 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stats.AgeInMonths(day(t, tc.birth), day(t, tc.now)))
		})
	}
}

func TestAgeInMonths_DayIndependentWithinMonth(t *testing.T) {
	birth := day(t, "2023-05-20")
	want := stats.AgeInMonths(birth, day(t, "2024-08-01"))
	for d := 2; d <= 31; d++ {
		now := time.Date(2024, time.August, d, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, stats.AgeInMonths(birth, now), "day %d", d)
	}
}

type entry struct {
	Date, Time string
}

func TestFilterByDay(t *testing.T) {
	entries := []entry{
		{Date: "2024-06-04", Time: "08:00"},
		{Date: "2024-06-05", Time: "09:00"},
	}
	dateOf := func(e entry) string { return e.Date }

	got := stats.FilterByDay(entries, "2024-06-05", dateOf)
	require.Len(t, got, 1)
	assert.Equal(t, entries[1], got[0])

	again := stats.FilterByDay(got, "2024-06-05", dateOf)
	assert.Equal(t, got, again)
}

func TestNextFeedTime(t *testing.T) {
	assert.Equal(t, "11:30", stats.NextFeedTime("08:30"))
	assert.Equal(t, "01:15", stats.NextFeedTime("22:15"))
	assert.Equal(t, "", stats.NextFeedTime(""))
	assert.Equal(t, "", stats.NextFeedTime("8am"))
}

func TestLatestClock(t *testing.T) {
	assert.Equal(t, "16:00", stats.LatestClock([]string{"08:00", "16:00", "12:00"}))
	assert.Equal(t, "", stats.LatestClock(nil))
	assert.Equal(t, "09:00", stats.LatestClock([]string{"bogus", "09:00"}))
}

func TestTally(t *testing.T) {
	categories := []string{"happy", "calm", "crying"}

	empty := stats.Tally(nil, categories)
	require.Len(t, empty, 3)
	for _, c := range empty {
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percentage)
	}

	labels := []string{"happy", "crying", "happy", "calm"}
	got := stats.Tally(labels, categories)

	sum := 0
	for _, c := range got {
		sum += c.Count
		assert.InDelta(t, 100*float64(c.Count)/float64(len(labels)), c.Percentage, 1e-9)
	}
	assert.Equal(t, len(labels), sum)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 50.0, got[0].Percentage, 1e-9)

	// labels desconocidos no entran ni en conteos ni en el total
	got = stats.Tally([]string{"happy", "sleepy", "crying", "", "happy"}, categories)
	sum, pct := 0, 0.0
	for _, c := range got {
		sum += c.Count
		pct += c.Percentage
	}
	assert.Equal(t, 3, sum)
	assert.InDelta(t, 100.0, pct, 1e-9)
	assert.InDelta(t, 100.0*2/3, got[0].Percentage, 1e-9)

	// solo desconocidos => todo en cero
	for _, c := range stats.Tally([]string{"sleepy"}, categories) {
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percentage)
	}
}

func TestSummarizeFeeds(t *testing.T) {
	s := stats.SummarizeFeeds("2024-06-05", []string{"08:00", "14:30", "11:15"})
	assert.Equal(t, stats.FeedSummary{Date: "2024-06-05", TotalFeeds: 3, LastFeed: "14:30", NextFeed: "17:30"}, s)

	empty := stats.SummarizeFeeds("2024-06-05", nil)
	assert.Equal(t, 0, empty.TotalFeeds)
	assert.Empty(t, empty.LastFeed)
	assert.Empty(t, empty.NextFeed)
}
