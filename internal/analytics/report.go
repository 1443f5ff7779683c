// Package analytics считает сводку по продуктам и чекам.
// Используется сервером и CLI (для офлайн-режима).
package analytics

import (
	"sort"
	"time"
)

const (
	// SoonWindow продукт считается «скоро истекает», если срок наступит в этом окне
	SoonWindow = 48 * time.Hour
	upcomingN  = 5
)

// Item минимальный набор полей продукта для сводки
type Item struct {
	Name       string
	Category   string
	Status     string
	Source     string
	Quantity   int
	ExpiryDate *time.Time
}

type Bill struct {
	Amount float64
}

// Upcoming ближайший по сроку продукт
type Upcoming struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiryDate"`
	DaysLeft   int       `json:"daysLeft"`
}

type Report struct {
	TotalItems        int            `json:"totalItems"`
	TotalQuantity     int            `json:"totalQuantity"`
	ByCategory        map[string]int `json:"byCategory"`
	ByStatus          map[string]int `json:"byStatus"`
	BySource          map[string]int `json:"bySource"`
	ExpiringSoon      int            `json:"expiringSoon"`
	Expired           int            `json:"expired"`
	Upcoming          []Upcoming     `json:"upcoming"`
	BillsCount        int            `json:"billsCount"`
	BillsTotal        float64        `json:"billsTotal"`
	NotificationsSent int64          `json:"notificationsSent"`
}

// Summarize строит сводку на момент now
func Summarize(items []Item, bills []Bill, now time.Time) Report {
	r := Report{
		ByCategory: map[string]int{},
		ByStatus:   map[string]int{},
		BySource:   map[string]int{},
		Upcoming:   []Upcoming{},
	}
	for _, it := range items {
		r.TotalItems++
		r.TotalQuantity += it.Quantity
		r.ByCategory[it.Category]++
		r.ByStatus[it.Status]++
		r.BySource[it.Source]++

		if it.ExpiryDate == nil {
			continue
		}
		exp := *it.ExpiryDate
		switch {
		case exp.Before(now):
			r.Expired++
		default:
			if exp.Sub(now) <= SoonWindow {
				r.ExpiringSoon++
			}
			r.Upcoming = append(r.Upcoming, Upcoming{
				Name:       it.Name,
				Category:   it.Category,
				ExpiryDate: exp,
				DaysLeft:   int(exp.Sub(now).Hours() / 24),
			})
		}
	}

	sort.SliceStable(r.Upcoming, func(i, j int) bool {
		return r.Upcoming[i].ExpiryDate.Before(r.Upcoming[j].ExpiryDate)
	})
	if len(r.Upcoming) > upcomingN {
		r.Upcoming = r.Upcoming[:upcomingN]
	}

	for _, b := range bills {
		r.BillsCount++
		r.BillsTotal += b.Amount
	}
	return r
}
