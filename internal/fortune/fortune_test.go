package fortune

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(20250515), Seed(date(2025, time.June, 15)))
	assert.Equal(t, int64(20250001), Seed(date(2025, time.January, 1)))
	assert.Equal(t, int64(20251131), Seed(date(2025, time.December, 31)))
}

func TestSeedDistinctAcrossDates(t *testing.T) {
	seen := map[int64]time.Time{}
	start := date(2024, time.January, 1)
	for i := 0; i < 3*366; i++ {
		d := start.AddDate(0, 0, i)
		s := Seed(d)
		if prev, ok := seen[s]; ok {
			t.Fatalf("seed %d shared by %s and %s", s, prev.Format("2006-01-02"), d.Format("2006-01-02"))
		}
		seen[s] = d
	}
}

func TestRandRange(t *testing.T) {
	for n := int64(20240000); n < 20260000; n += 37 {
		r := Rand(n)
		if r < 0 || r >= 1 {
			t.Fatalf("Rand(%d) = %v out of [0,1)", n, r)
		}
	}
}

// Fixed vectors guard the sin-based transform against drift.
func TestRandConformance(t *testing.T) {
	assert.InDelta(t, 0.5896924314092757, Rand(20250515), 1e-6)
	assert.InDelta(t, 0.21603404459528974, Rand(20250516), 1e-6)
	assert.InDelta(t, 0.4137708567459413, Rand(20250517), 1e-6)
	assert.InDelta(t, 0.03453245890159451, Rand(20250001), 1e-6)
}

func TestIndexesConformance(t *testing.T) {
	cases := []struct {
		day                     time.Time
		category, first, second int
	}{
		{date(2025, time.June, 15), 3, 6, 13},
		{date(2025, time.January, 1), 0, 14, 4},
		{date(2025, time.January, 7), 1, 31, 4},
		{date(2025, time.January, 2), 2, 4, 30},
		{date(2025, time.January, 12), 4, 1, 9},
		{date(2025, time.January, 4), 5, 28, 13},
		{date(2024, time.February, 29), 2, 28, 21},
		// second draw collides with the first and shifts by one
		{date(2025, time.January, 16), 2, 18, 19},
		{date(2025, time.July, 8), 0, 21, 22},
	}
	for _, c := range cases {
		ci, f, s := Indexes(c.day)
		assert.Equal(t, c.category, ci, "category for %s", c.day.Format("2006-01-02"))
		assert.Equal(t, c.first, f, "first item for %s", c.day.Format("2006-01-02"))
		assert.Equal(t, c.second, s, "second item for %s", c.day.Format("2006-01-02"))
	}
}

func TestGenerateFields(t *testing.T) {
	r := Generate(date(2025, time.June, 15))
	assert.Equal(t, "2025-06-15", r.Date)
	assert.Equal(t, "吉", r.Fortune)
	assert.Equal(t, Categories[3].Description, r.Description)
	assert.Equal(t, "#48dbfb", r.Color)
	assert.Equal(t, [2]string{"🔮", "✨"}, r.LuckyItems)

	r = Generate(date(2025, time.January, 1))
	assert.Equal(t, "大吉", r.Fortune)
	assert.Equal(t, "#ff6b6b", r.Color)
}

func TestGenerateIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	night := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, Generate(morning), Generate(night))
}

func TestGenerateLuckyItemsDistinct(t *testing.T) {
	start := date(2020, time.January, 1)
	for i := 0; i < 10*366; i++ {
		d := start.AddDate(0, 0, i)
		r := Generate(d)
		if r.LuckyItems[0] == r.LuckyItems[1] {
			t.Fatalf("%s: lucky items repeat: %v", d.Format("2006-01-02"), r.LuckyItems)
		}
	}
}

func TestGenerateCoversAllCategories(t *testing.T) {
	seen := map[string]bool{}
	start := date(2025, time.January, 1)
	for i := 0; i < 366; i++ {
		seen[Generate(start.AddDate(0, 0, i)).Fortune] = true
	}
	for _, c := range Categories {
		assert.True(t, seen[c.Label], "category %s never drawn", c.Label)
	}
}
