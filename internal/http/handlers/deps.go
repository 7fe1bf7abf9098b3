package handlers

import (
	"purposefood/internal/config"
	"purposefood/internal/repos"
	"purposefood/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	StorefrontHandler   *StorefrontHandler
	ProductHandler      *ProductHandler
	AvailabilityHandler *AvailabilityHandler
	OrderHandler        *OrderHandler
	CustomerHandler     *CustomerHandler
	FinanceHandler      *FinanceHandler
	InvoiceHandler      *InvoiceHandler
	SocialHandler       *SocialHandler
	NotificationHandler *NotificationHandler
	DashboardHandler    *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	finRepo := repos.NewFinanceRepo(db)
	invRepo := repos.NewInvoiceRepo(db)
	socialRepo := repos.NewSocialRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	availSvc := services.NewAvailabilityService(prodRepo)
	invSvc := services.NewInventoryService(prodRepo, notifRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, finRepo, availSvc, invSvc)
	invoiceSvc := services.NewInvoiceService(invRepo, orderRepo)
	dashSvc := services.NewDashboardService(orderRepo, prodRepo, notifRepo, finRepo)

	return &Deps{
		StorefrontHandler:   &StorefrontHandler{Catalog: catalogSvc},
		ProductHandler:      &ProductHandler{Catalog: catalogSvc, Inv: invSvc},
		AvailabilityHandler: &AvailabilityHandler{Avail: availSvc},
		OrderHandler:        &OrderHandler{Order: orderSvc, Repo: orderRepo},
		CustomerHandler:     &CustomerHandler{Customers: custRepo, Orders: orderRepo},
		FinanceHandler:      &FinanceHandler{Finance: finRepo},
		InvoiceHandler:      &InvoiceHandler{Svc: invoiceSvc, Repo: invRepo},
		SocialHandler:       &SocialHandler{Posts: socialRepo},
		NotificationHandler: &NotificationHandler{Notifs: notifRepo},
		DashboardHandler:    &DashboardHandler{Dash: dashSvc},
	}
}
