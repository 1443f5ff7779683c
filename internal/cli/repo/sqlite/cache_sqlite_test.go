package sqlite

import (
	"Fridgella/internal/cli/model"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *CacheSQLite {
	t.Helper()
	r, _, err := OpenForUser(t.TempDir(), "jane@example.com")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	if err := r.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return r
}

func TestOpenForUser_CreatesPerUserFile(t *testing.T) {
	base := t.TempDir()
	r, p, err := OpenForUser(base, "Jane.Doe+food@Example.com")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()
	if err := r.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	want := filepath.Join(base, "jane.doe_food@example.com", "client.sqlite")
	if p != want {
		t.Fatalf("path = %q, want %q", p, want)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
}

func TestOpenForUser_EmptyEmail(t *testing.T) {
	if _, _, err := OpenForUser(t.TempDir(), "  "); err == nil {
		t.Fatalf("expected error for empty email")
	}
}

func TestReplaceAndListItems(t *testing.T) {
	r := openTemp(t)

	exp := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	bought := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []model.Item{
		{ID: "b", Name: "Milk", Category: "Dairy", Quantity: 2, PurchaseDate: bought, ExpiryDate: &exp, Status: "fresh", Source: "manual"},
		{ID: "a", Name: "Salt", Category: "Other", Quantity: 1, Status: "fresh", Source: "bill", Notified: true},
	}
	if err := r.ReplaceItems(items); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := r.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// порядок сохраняется, а не сортируется по id
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].ExpiryDate == nil || !got[0].ExpiryDate.Equal(exp) || !got[0].PurchaseDate.Equal(bought) {
		t.Fatalf("dates not restored: %+v", got[0])
	}
	if got[1].ExpiryDate != nil || !got[1].Notified || !got[1].PurchaseDate.IsZero() {
		t.Fatalf("unexpected second item: %+v", got[1])
	}

	// повторная замена полностью вытесняет старые данные
	if err := r.ReplaceItems([]model.Item{{ID: "c", Name: "Tea", Quantity: 1}}); err != nil {
		t.Fatalf("replace 2: %v", err)
	}
	got, _ = r.ListItems()
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected only c, got %+v", got)
	}
}

func TestReplaceItems_DuplicateRollsBack(t *testing.T) {
	r := openTemp(t)
	if err := r.ReplaceItems([]model.Item{{ID: "x", Name: "Keep", Quantity: 1}}); err != nil {
		t.Fatal(err)
	}
	err := r.ReplaceItems([]model.Item{{ID: "d", Name: "A", Quantity: 1}, {ID: "d", Name: "B", Quantity: 1}})
	if err == nil {
		t.Fatalf("expected error on duplicate id")
	}
	got, _ := r.ListItems()
	if len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("previous cache must survive failed replace, got %+v", got)
	}
}

func TestReplaceAndListBills(t *testing.T) {
	r := openTemp(t)
	created := time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := r.ReplaceBills([]model.Bill{{ID: "b1", Title: "Groceries", Amount: 12.5, CreatedAt: created}}); err != nil {
		t.Fatalf("replace bills: %v", err)
	}
	got, err := r.ListBills()
	if err != nil {
		t.Fatalf("list bills: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 12.5 || !got[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected bills: %+v", got)
	}
}
