package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(t time.Time) *time.Time { return &t }

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []Item{
		{Name: "Milk", Category: "Dairy", Status: "fresh", Source: "manual", Quantity: 2, ExpiryDate: at(now.Add(24 * time.Hour))},
		{Name: "Bread", Category: "Bakery", Status: "expiring", Source: "bill", Quantity: 1, ExpiryDate: at(now.Add(-time.Hour))},
		{Name: "Rice", Category: "Other", Status: "fresh", Source: "bill", Quantity: 3},
		{Name: "Cheese", Category: "Dairy", Status: "fresh", Source: "manual", Quantity: 1, ExpiryDate: at(now.Add(10 * 24 * time.Hour))},
	}
	bills := []Bill{{Amount: 12.5}, {Amount: 7.5}}

	r := Summarize(items, bills, now)

	assert.Equal(t, 4, r.TotalItems)
	assert.Equal(t, 7, r.TotalQuantity)
	assert.Equal(t, map[string]int{"Dairy": 2, "Bakery": 1, "Other": 1}, r.ByCategory)
	assert.Equal(t, 3, r.ByStatus["fresh"])
	assert.Equal(t, 2, r.BySource["bill"])
	assert.Equal(t, 1, r.ExpiringSoon)
	assert.Equal(t, 1, r.Expired)
	assert.Equal(t, 2, r.BillsCount)
	assert.InDelta(t, 20.0, r.BillsTotal, 0.0001)

	if assert.Len(t, r.Upcoming, 2) {
		assert.Equal(t, "Milk", r.Upcoming[0].Name)
		assert.Equal(t, 1, r.Upcoming[0].DaysLeft)
		assert.Equal(t, "Cheese", r.Upcoming[1].Name)
	}
}

func TestSummarize_Empty(t *testing.T) {
	r := Summarize(nil, nil, time.Now())
	assert.Zero(t, r.TotalItems)
	assert.NotNil(t, r.ByCategory)
	assert.NotNil(t, r.Upcoming)
}

func TestSummarize_UpcomingCapped(t *testing.T) {
	now := time.Now().UTC()
	var items []Item
	for i := 10; i > 0; i-- {
		items = append(items, Item{Name: "x", Category: "c", Quantity: 1, ExpiryDate: at(now.Add(time.Duration(i) * time.Hour))})
	}
	r := Summarize(items, nil, now)
	assert.Len(t, r.Upcoming, 5)
	assert.True(t, r.Upcoming[0].ExpiryDate.Before(r.Upcoming[4].ExpiryDate))
}
