package services

import (
	"time"

	"purposefood/internal/domain"
)

// ProductStore is the slice of the product repository the stock core needs.
// Kept as an interface so the availability/adjustment logic can be exercised
// against stubs as well as the sqlx repo.
type ProductStore interface {
	Get(id string) (domain.Product, error)
	SetStock(id string, stock int, updatedAt time.Time) error
	UpdateFields(id string, fields map[string]any) (domain.Product, error)
}

// NotificationSink appends alert records. Notifications are immutable once
// written; read-state lives with the notification center.
type NotificationSink interface {
	InsertBatch(ns []domain.Notification) error
}
