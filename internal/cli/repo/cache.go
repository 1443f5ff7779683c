package repo

import "Fridgella/internal/cli/model"

// CacheRepository локальная копия последних полученных с сервера данных пользователя.
type CacheRepository interface {
	// ReplaceItems заменяет закэшированный список продуктов целиком.
	ReplaceItems(items []model.Item) error
	ListItems() ([]model.Item, error)

	ReplaceBills(bills []model.Bill) error
	ListBills() ([]model.Bill, error)

	Close() error
}
