package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shantum/COH-ERP2-sub002/api/controllers"
	"github.com/shantum/COH-ERP2-sub002/api/middleware"
	"github.com/shantum/COH-ERP2-sub002/internal/admin"
	"github.com/shantum/COH-ERP2-sub002/internal/analytics"
	internalauth "github.com/shantum/COH-ERP2-sub002/internal/auth"
	"github.com/shantum/COH-ERP2-sub002/internal/orders"
	"github.com/shantum/COH-ERP2-sub002/internal/settings"
	"github.com/shantum/COH-ERP2-sub002/pkg/auth/session"
	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
	"github.com/shantum/COH-ERP2-sub002/pkg/metrics"
	"github.com/shantum/COH-ERP2-sub002/pkg/redis"
	"github.com/shantum/COH-ERP2-sub002/pkg/worker"
)

// Deps carries everything the HTTP surface needs. The router owns no
// construction; main wires these up.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	ReadyChecks map[string]controllers.Pinger

	RedisClient *redis.Client
	Sessions    session.Checker

	AuthService      internalauth.Service
	OrdersService    orders.Service
	AnalyticsService analytics.Service
	AdminService     admin.Service
	TablesService    admin.TablesService
	SettingsService  settings.Service
	WorkerClient     *worker.Client
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, deps.AdminService, logg))
			r.Post("/logout", controllers.Logout(deps.AuthService, logg))
			r.Get("/me", controllers.Me(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, deps.AdminService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrdersService, logg))
			r.Get("/search", controllers.SearchAllOrders(deps.OrdersService, logg))
			r.Get("/search/unified", controllers.SearchOrdersUnified(deps.OrdersService, logg))
			r.Get("/by-number/{orderNumber}", controllers.GetOrderByNumber(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.OrdersService, logg))
			r.Put("/{orderId}/notes", controllers.UpdateOrderNotes(deps.OrdersService, logg))
		})

		r.Get("/analytics/dashboard", controllers.AnalyticsDashboard(deps.AnalyticsService, logg))

		r.Route("/grid-preferences/{gridKey}", func(r chi.Router) {
			r.Get("/", controllers.GetGridLayout(deps.SettingsService, logg))
			r.Put("/", controllers.SaveGridLayout(deps.SettingsService, logg))
			r.Delete("/", controllers.ResetGridLayout(deps.SettingsService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, deps.AdminService, logg))
		r.Use(middleware.RequireAdministrative(logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListAdminUsers(deps.AdminService, logg))
			r.Post("/", controllers.CreateAdminUser(deps.AdminService, logg))
			r.Get("/{userId}", controllers.GetAdminUser(deps.AdminService, logg))
			r.Patch("/{userId}", controllers.UpdateAdminUser(deps.AdminService, logg))
			r.Delete("/{userId}", controllers.DeleteAdminUser(deps.AdminService, logg))
			r.Put("/{userId}/permissions", controllers.ReplaceUserOverrides(deps.AdminService, logg))
		})
		r.Get("/permissions", controllers.ListPermissionCatalog(logg))

		r.Route("/settings", func(r chi.Router) {
			r.Route("/channels", func(r chi.Router) {
				r.Get("/", controllers.ListSalesChannels(deps.SettingsService, logg))
				r.Post("/", controllers.CreateSalesChannel(deps.SettingsService, logg))
				r.Patch("/{channelId}", controllers.UpdateSalesChannel(deps.SettingsService, logg))
			})
			r.Route("/customer-tiers", func(r chi.Router) {
				r.Get("/", controllers.GetTierThresholds(deps.SettingsService, logg))
				r.Put("/", controllers.UpdateTierThresholds(deps.SettingsService, logg))
			})
			r.Put("/grid-defaults/{gridKey}", controllers.SaveDefaultGridLayout(deps.SettingsService, logg))
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", controllers.ListTables(deps.TablesService, logg))
			r.Get("/{tableName}", controllers.InspectTable(deps.TablesService, logg))
			r.Post("/clear", controllers.ClearTables(deps.TablesService, logg))
		})

		r.Get("/logs", controllers.WorkerLogs(deps.WorkerClient, logg))
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/runs", controllers.WorkerRuns(deps.WorkerClient, logg))
			r.Get("/stats", controllers.WorkerStats(deps.WorkerClient, logg))
			r.Post("/{jobId}/start", controllers.StartJob(deps.WorkerClient, logg))
			r.Post("/{jobId}/cancel", controllers.CancelJob(deps.WorkerClient, logg))
			r.Put("/{jobId}/enabled", controllers.SetJobEnabled(deps.WorkerClient, logg))
		})
		r.Route("/shopify", func(r chi.Router) {
			r.Get("/config", controllers.GetShopifyConfig(deps.WorkerClient, logg))
			r.Put("/config", controllers.UpdateShopifyConfig(deps.WorkerClient, logg))
			r.Post("/sync", controllers.TriggerShopifySync(deps.WorkerClient, logg))
			r.Post("/test", controllers.TestShopifyConnection(deps.WorkerClient, logg))
		})
	})

	return r
}
