package sqlite

import (
	"Fridgella/internal/cli/model"
	"Fridgella/internal/cli/repo"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// CacheSQLite кэш продуктов и чеков пользователя в локальной SQLite.
type CacheSQLite struct {
	db *sql.DB
}

var _ repo.CacheRepository = (*CacheSQLite)(nil)

var unsafeRe = regexp.MustCompile(`[^A-Za-z0-9._@-]`)

// userDir имя подкаталога для email, безопасное для файловой системы
func userDir(email string) string {
	return unsafeRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(email)), "_")
}

// OpenForUser открывает (и создаёт при необходимости) файл кэша
// base/<email>/client.sqlite. Вторым значением возвращается путь к БД.
func OpenForUser(base, email string) (*CacheSQLite, string, error) {
	if strings.TrimSpace(email) == "" {
		return nil, "", errors.New("empty email for user cache")
	}
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "Fridgella", "users")
	}
	dir := filepath.Join(base, userDir(email))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "client.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &CacheSQLite{db: db}, dbPath, nil
}

// Close закрывает соединение с БД.
func (r *CacheSQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (r *CacheSQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

// ReplaceItems заменяет содержимое таблицы items в одной транзакции, сохраняя порядок.
func (r *CacheSQLite) ReplaceItems(items []model.Item) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO items(
        id, name, category, quantity, purchase_date, expiry_date,
        status, source, notified, added_at, position
    ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range items {
		var expiry sql.NullInt64
		if it.ExpiryDate != nil {
			expiry = sql.NullInt64{Int64: it.ExpiryDate.Unix(), Valid: true}
		}
		notified := 0
		if it.Notified {
			notified = 1
		}
		if _, err := stmt.Exec(
			it.ID, it.Name, it.Category, it.Quantity, toUnix(it.PurchaseDate), expiry,
			it.Status, it.Source, notified, toUnix(it.AddedAt), i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListItems возвращает закэшированные продукты в порядке последней выгрузки.
func (r *CacheSQLite) ListItems() ([]model.Item, error) {
	rows, err := r.db.Query(`SELECT id, name, category, quantity, purchase_date, expiry_date,
        status, source, notified, added_at FROM items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Item
	for rows.Next() {
		var (
			it                model.Item
			purchase, addedAt int64
			expiry            sql.NullInt64
			notified          int
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &purchase, &expiry,
			&it.Status, &it.Source, &notified, &addedAt); err != nil {
			return nil, err
		}
		it.PurchaseDate = fromUnix(purchase)
		it.AddedAt = fromUnix(addedAt)
		if expiry.Valid {
			t := time.Unix(expiry.Int64, 0).UTC()
			it.ExpiryDate = &t
		}
		it.Notified = notified != 0
		res = append(res, it)
	}
	return res, rows.Err()
}

// ReplaceBills заменяет содержимое таблицы bills.
func (r *CacheSQLite) ReplaceBills(bills []model.Bill) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM bills`); err != nil {
		return err
	}
	for i, b := range bills {
		if _, err := tx.Exec(`INSERT INTO bills(id, title, amount, created_at, position) VALUES(?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.Amount, toUnix(b.CreatedAt), i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CacheSQLite) ListBills() ([]model.Bill, error) {
	rows, err := r.db.Query(`SELECT id, title, amount, created_at FROM bills ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Bill
	for rows.Next() {
		var b model.Bill
		var created int64
		if err := rows.Scan(&b.ID, &b.Title, &b.Amount, &created); err != nil {
			return nil, err
		}
		b.CreatedAt = fromUnix(created)
		res = append(res, b)
	}
	return res, rows.Err()
}
