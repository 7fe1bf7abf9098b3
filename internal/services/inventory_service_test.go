package services_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"purposefood/internal/domain"
	"purposefood/internal/repos"
	"purposefood/internal/services"
)

func TestApplyOrderDecrementsIntoBacklog(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-cake", 3, 2, 3, true)

	prodRepo := repos.NewProductRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	svc := services.NewInventoryService(prodRepo, notifRepo)

	res, err := svc.ApplyOrder("o-1", []domain.LineItem{{ProductID: "p-cake", Quantity: 5}})
	require.NoError(t, err)

	require.Len(t, res.Updates, 1)
	up := res.Updates[0]
	require.Equal(t, 3, up.PreviousStock)
	require.Equal(t, -2, up.NewStock)
	require.Equal(t, 5, up.QtyOrdered)

	p, err := prodRepo.Get("p-cake")
	require.NoError(t, err)
	require.Equal(t, -2, p.StockCurrent)

	require.Len(t, res.Notifications, 1)
	require.Equal(t, domain.NotifProductionNeeded, res.Notifications[0].Type)

	// the batch must have been persisted, not just returned
	stored, err := notifRepo.List(10, false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, domain.NotifProductionNeeded, stored[0].Type)
	require.Equal(t, "p-cake", stored[0].Data["product_id"])
}

func TestApplyOrderLowStockNotification(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-juice", 10, 6, 0.5, true)

	svc := services.NewInventoryService(repos.NewProductRepo(db), repos.NewNotificationRepo(db))

	res, err := svc.ApplyOrder("o-2", []domain.LineItem{{ProductID: "p-juice", Quantity: 5}})
	require.NoError(t, err)

	require.Len(t, res.Updates, 1)
	require.Equal(t, 5, res.Updates[0].NewStock)
	require.Len(t, res.Notifications, 1)
	require.Equal(t, domain.NotifLowStock, res.Notifications[0].Type)
}

func TestApplyOrderAboveMinimumStaysQuiet(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-plenty", 10, 2, 1, true)

	svc := services.NewInventoryService(repos.NewProductRepo(db), repos.NewNotificationRepo(db))

	res, err := svc.ApplyOrder("o-3", []domain.LineItem{{ProductID: "p-plenty", Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, res.Updates, 1)
	require.Empty(t, res.Notifications)
}

// flakyStore fails reads or writes for chosen product ids and delegates the
// rest.
type flakyStore struct {
	inner     services.ProductStore
	failID    string
	failSetID string
}

func (f *flakyStore) Get(id string) (domain.Product, error) {
	if id == f.failID {
		return domain.Product{}, errors.New("read failed")
	}
	return f.inner.Get(id)
}

func (f *flakyStore) SetStock(id string, stock int, updatedAt time.Time) error {
	if id == f.failSetID {
		return errors.New("write failed")
	}
	return f.inner.SetStock(id, stock, updatedAt)
}

func (f *flakyStore) UpdateFields(id string, fields map[string]any) (domain.Product, error) {
	return f.inner.UpdateFields(id, fields)
}

// A line whose product cannot be read is skipped; the rest of the order is
// still applied.
func TestApplyOrderSkipsUnreadableLine(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-good", 6, 2, 1, true)
	addProduct(t, db, "p-bad", 6, 2, 1, true)

	prodRepo := repos.NewProductRepo(db)
	store := &flakyStore{inner: prodRepo, failID: "p-bad"}
	svc := services.NewInventoryService(store, repos.NewNotificationRepo(db))

	res, err := svc.ApplyOrder("o-4", []domain.LineItem{
		{ProductID: "p-bad", Quantity: 2},
		{ProductID: "p-good", Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, res.Updates, 1)
	require.Equal(t, "p-good", res.Updates[0].ProductID)
	require.Empty(t, res.Notifications)

	bad, err := prodRepo.Get("p-bad")
	require.NoError(t, err)
	require.Equal(t, 6, bad.StockCurrent)
}

// A failed stock write skips that line only; later lines still apply.
func TestApplyOrderSkipsUnwritableLine(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-stuck", 6, 2, 1, true)
	addProduct(t, db, "p-flows", 6, 2, 1, true)

	prodRepo := repos.NewProductRepo(db)
	store := &flakyStore{inner: prodRepo, failSetID: "p-stuck"}
	svc := services.NewInventoryService(store, repos.NewNotificationRepo(db))

	res, err := svc.ApplyOrder("o-6", []domain.LineItem{
		{ProductID: "p-stuck", Quantity: 2},
		{ProductID: "p-flows", Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, res.Updates, 1)
	require.Equal(t, "p-flows", res.Updates[0].ProductID)

	stuck, err := prodRepo.Get("p-stuck")
	require.NoError(t, err)
	require.Equal(t, 6, stuck.StockCurrent)

	flows, err := prodRepo.Get("p-flows")
	require.NoError(t, err)
	require.Equal(t, 4, flows.StockCurrent)
}

// downSink refuses every batch.
type downSink struct{}

func (downSink) InsertBatch(ns []domain.Notification) error {
	return errors.New("sink down")
}

// A notification-batch failure is advisory: stock already written stays
// written and the call still succeeds.
func TestApplyOrderSurvivesNotificationFailure(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-alert", 3, 2, 3, true)

	prodRepo := repos.NewProductRepo(db)
	svc := services.NewInventoryService(prodRepo, downSink{})

	res, err := svc.ApplyOrder("o-7", []domain.LineItem{{ProductID: "p-alert", Quantity: 5}})
	require.NoError(t, err)

	require.Len(t, res.Updates, 1)
	require.Equal(t, -2, res.Updates[0].NewStock)
	require.Len(t, res.Notifications, 1)

	p, err := prodRepo.Get("p-alert")
	require.NoError(t, err)
	require.Equal(t, -2, p.StockCurrent)
}

func TestApplyOrderRequiresWiring(t *testing.T) {
	svc := &services.InventoryService{}
	_, err := svc.ApplyOrder("o-5", nil)
	require.Error(t, err)
}

func TestUpdateProductAndNotify(t *testing.T) {
	db := memdb(t)
	addProduct(t, db, "p-edit", 4, 2, 3, true)

	notifRepo := repos.NewNotificationRepo(db)
	svc := services.NewInventoryService(repos.NewProductRepo(db), notifRepo)

	p, err := svc.UpdateProductAndNotify("p-edit", map[string]any{
		"price":         12.5,
		"stock_current": 9,
	})
	require.NoError(t, err)
	require.Equal(t, 12.5, p.Price)
	require.Equal(t, 9, p.StockCurrent)

	stored, err := notifRepo.List(10, false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, domain.NotifProductUpdated, stored[0].Type)
	require.ElementsMatch(t, []any{"price", "stock_current"}, stored[0].Data["fields"])
}
