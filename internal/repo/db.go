package repo

import (
	"Fridgella/internal/model"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrDuplicate возвращается при нарушении уникальности (email пользователя).
var ErrDuplicate = errors.New("duplicate record")

// InitDB открывает БД по DSN и прогоняет миграции всех моделей.
// DSN вида file:..., *.db, *.sqlite или :memory: открывается через SQLite (modernc),
// всё остальное считается строкой подключения к Postgres.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database dsn")
	}
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы users, items, bills, notifications.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Item{}, &model.Bill{}, &model.Notification{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// IsSQLiteDSN определяет, что DSN указывает на файл SQLite.
func IsSQLiteDSN(dsn string) bool {
	d := strings.ToLower(dsn)
	return strings.HasPrefix(d, "file:") ||
		strings.HasPrefix(d, ":memory:") ||
		strings.HasSuffix(d, ".db") ||
		strings.HasSuffix(d, ".sqlite")
}

func dialector(dsn string) gorm.Dialector {
	if IsSQLiteDSN(dsn) {
		return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}
	return postgres.Open(dsn)
}
