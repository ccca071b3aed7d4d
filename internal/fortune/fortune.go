// Package fortune maps a calendar date to a deterministic daily fortune.
package fortune

import (
	"math"
	"time"
)

// Category is one row of the fixed fortune table, best first.
type Category struct {
	Label       string `json:"label" yaml:"label"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

var Categories = [6]Category{
	{Label: "大吉", Name: "Great blessing", Description: "A wonderful day ahead! Take on anything with confidence.", Color: "#ff6b6b"},
	{Label: "中吉", Name: "Middle blessing", Description: "Something good is on its way. Don't let the chance slip by.", Color: "#ff9f43"},
	{Label: "小吉", Name: "Small blessing", Description: "A day for small joys. Keep an eye on the little changes around you.", Color: "#feca57"},
	{Label: "吉", Name: "Blessing", Description: "A calm and steady day. Move things forward according to plan.", Color: "#48dbfb"},
	{Label: "末吉", Name: "Future blessing", Description: "Your luck picks up later on. Don't give up.", Color: "#0abde3"},
	{Label: "凶", Name: "Curse", Description: "Careful steps will carry you through. Don't push yourself too hard.", Color: "#c8d6e5"},
}

// LuckyItems is the pool the two lucky items are drawn from.
var LuckyItems = [32]string{
	"🍀", "💎", "🌟", "🎯", "🗝️", "📿", "🔮", "💰",
	"🎪", "🎭", "🎨", "🎵", "📚", "✨", "🌙", "☀️",
	"🦋", "🐞", "🌈", "🎈", "🎁", "🏆", "👑", "💝",
	"🧿", "🪬", "🌸", "🌺", "🍒", "🍊", "🥇", "⭐",
}

// Result is the fortune for one calendar date.
type Result struct {
	Date        string    `json:"date" yaml:"date"`
	Fortune     string    `json:"fortune" yaml:"fortune"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	LuckyItems  [2]string `json:"lucky_items" yaml:"lucky_items"`
	Color       string    `json:"color" yaml:"color"`
}

// Seed derives the generator seed from t's calendar date. The month is
// zero-based, so every date maps to a distinct seed.
func Seed(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m-1)*100 + int64(d)
}

// Rand is the fractional part of sin(n)*10000, in [0,1). The transform is
// fixed so a date maps to the same fortune on every platform.
func Rand(n int64) float64 {
	x := math.Sin(float64(n)) * 10000
	return x - math.Floor(x)
}

func pick(n int64, size int) int {
	i := int(math.Floor(Rand(n) * float64(size)))
	// guards against a rounding edge where Rand*size lands exactly on size
	if i >= size {
		i = size - 1
	}
	return i
}

// Indexes returns the category index and the two distinct lucky item indexes for t.
func Indexes(t time.Time) (category, first, second int) {
	seed := Seed(t)
	category = pick(seed, len(Categories))
	first = pick(seed+1, len(LuckyItems))
	second = pick(seed+2, len(LuckyItems))
	for second == first {
		second = (second + 1) % len(LuckyItems)
	}
	return category, first, second
}

// Generate returns the fortune for t's calendar date. Time of day is ignored.
func Generate(t time.Time) Result {
	ci, first, second := Indexes(t)
	c := Categories[ci]
	return Result{
		Date:        t.Format("2006-01-02"),
		Fortune:     c.Label,
		Name:        c.Name,
		Description: c.Description,
		LuckyItems:  [2]string{LuckyItems[first], LuckyItems[second]},
		Color:       c.Color,
	}
}
