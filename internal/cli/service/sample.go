package service

import (
	"Fridgella/internal/cli/model"
	"time"
)

// SampleData демонстрационный набор для аналитики, когда своих данных ещё нет.
// Даты отсчитываются от now, чтобы в сводке были все состояния
func SampleData(now time.Time) ([]model.Item, []model.Bill) {
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time {
		t := now.Add(d).UTC()
		return &t
	}
	items := []model.Item{
		{ID: "sample-1", Name: "Milk", Category: "Dairy", Quantity: 2, ExpiryDate: at(day), Status: "expiring", Source: "manual"},
		{ID: "sample-2", Name: "Cheddar", Category: "Dairy", Quantity: 1, ExpiryDate: at(12 * day), Status: "fresh", Source: "bill"},
		{ID: "sample-3", Name: "Spinach", Category: "Vegetables", Quantity: 1, ExpiryDate: at(-day), Status: "expired", Source: "bill"},
		{ID: "sample-4", Name: "Apples", Category: "Fruit", Quantity: 6, ExpiryDate: at(9 * day), Status: "fresh", Source: "bill"},
		{ID: "sample-5", Name: "Chicken breast", Category: "Meat", Quantity: 2, ExpiryDate: at(36 * time.Hour), Status: "expiring", Source: "manual"},
		{ID: "sample-6", Name: "Rice", Category: "Pantry", Quantity: 1, Status: "fresh", Source: "manual"},
	}
	bills := []model.Bill{
		{ID: "sample-bill-1", Title: "Weekly groceries", Amount: 54.3, CreatedAt: now.Add(-3 * day).UTC()},
		{ID: "sample-bill-2", Title: "Corner shop", Amount: 12.9, CreatedAt: now.Add(-day).UTC()},
	}
	return items, bills
}
