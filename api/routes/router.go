package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bebifresh/bebifresh-backend/api/controllers"
	"github.com/bebifresh/bebifresh-backend/api/middleware"
	authsvc "github.com/bebifresh/bebifresh-backend/internal/auth"
	cartsvc "github.com/bebifresh/bebifresh-backend/internal/cart"
	"github.com/bebifresh/bebifresh-backend/internal/catalog"
	dashsvc "github.com/bebifresh/bebifresh-backend/internal/dashboard"
	posvc "github.com/bebifresh/bebifresh-backend/internal/purchaseorders"
	suppliersvc "github.com/bebifresh/bebifresh-backend/internal/suppliers"
	usersvc "github.com/bebifresh/bebifresh-backend/internal/users"
	"github.com/bebifresh/bebifresh-backend/pkg/auth/session"
	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db"
	"github.com/bebifresh/bebifresh-backend/pkg/enums"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
	"github.com/bebifresh/bebifresh-backend/pkg/metrics"
	"github.com/bebifresh/bebifresh-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler prometheus.Gatherer

	Auth           authsvc.Service
	Catalog        catalog.Service
	Cart           cartsvc.Service
	PurchaseOrders posvc.Service
	Suppliers      suppliersvc.Service
	Users          usersvc.Service
	Dashboard      dashsvc.Service
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.AgeMode(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsHandler, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.Use(middleware.InvalidateSummary(deps.Dashboard))

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Catalog, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.MemberRoleAdmin, enums.MemberRoleManager))
				r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
				r.Patch("/{productId}", controllers.UpdateProduct(deps.Catalog, logg))
				r.Post("/{productId}/batches", controllers.AddProductBatch(deps.Catalog, logg))
				r.Post("/{productId}/promotions", controllers.CreateProductPromotion(deps.Catalog, logg))
			})
		})
		r.With(middleware.RequireRole(logg, enums.MemberRoleAdmin, enums.MemberRoleManager)).
			Delete("/v1/promotions/{promotionId}", controllers.DeletePromotion(deps.Catalog, logg))

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Post("/", controllers.UpsertCartItem(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Delete("/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Route("/v1/purchase-orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.MemberRoleAdmin, enums.MemberRoleManager, enums.MemberRoleClerk))

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", controllers.OpenDraft(deps.PurchaseOrders, logg))
				r.Get("/{draftId}", controllers.ViewDraft(deps.PurchaseOrders, logg))
				r.Delete("/{draftId}", controllers.DiscardDraft(deps.PurchaseOrders, logg))
				r.Post("/{draftId}/lines", controllers.AddDraftLine(deps.PurchaseOrders, logg))
				r.Post("/{draftId}/lines/{itemId}/edit", controllers.EditDraftLine(deps.PurchaseOrders, logg))
				r.Delete("/{draftId}/lines/{itemId}", controllers.RemoveDraftLine(deps.PurchaseOrders, logg))
				r.Post("/{draftId}/submit", controllers.SubmitDraft(deps.PurchaseOrders, logg))
			})

			r.Get("/", controllers.ListOrders(deps.PurchaseOrders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.PurchaseOrders, logg))
			r.Post("/{orderId}/receive", controllers.ReceiveOrder(deps.PurchaseOrders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.PurchaseOrders, logg))
		})

		r.Route("/v1/suppliers", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.MemberRoleAdmin, enums.MemberRoleManager))
			r.Get("/", controllers.ListSuppliers(deps.Suppliers, logg))
			r.Post("/", controllers.CreateSupplier(deps.Suppliers, logg))
			r.Get("/{supplierId}", controllers.GetSupplier(deps.Suppliers, logg))
			r.Patch("/{supplierId}", controllers.UpdateSupplier(deps.Suppliers, logg))
			r.Delete("/{supplierId}", controllers.DeleteSupplier(deps.Suppliers, logg))
		})

		r.Get("/v1/dashboard/summary", controllers.DashboardSummary(deps.Dashboard, logg))

		r.Route("/admin/v1/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.MemberRoleAdmin))
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Post("/", controllers.CreateUser(deps.Users, logg))
			r.Get("/{userId}", controllers.GetUser(deps.Users, logg))
			r.Patch("/{userId}", controllers.UpdateUser(deps.Users, logg))
		})
	})

	return r
}
