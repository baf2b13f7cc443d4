// Package server assembles repositories, use cases and handlers into the
// HTTP router and the gRPC health endpoint.
package server

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/config"
	adminH "github.com/fekuna/omnipos-storefront/internal/admin/handler"
	adminUC "github.com/fekuna/omnipos-storefront/internal/admin/usecase"
	analyticsH "github.com/fekuna/omnipos-storefront/internal/analytics/handler"
	analyticsRepo "github.com/fekuna/omnipos-storefront/internal/analytics/repository"
	analyticsUC "github.com/fekuna/omnipos-storefront/internal/analytics/usecase"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/currency"
	dropH "github.com/fekuna/omnipos-storefront/internal/drop/handler"
	dropRepo "github.com/fekuna/omnipos-storefront/internal/drop/repository"
	dropUC "github.com/fekuna/omnipos-storefront/internal/drop/usecase"
	invH "github.com/fekuna/omnipos-storefront/internal/inventory/handler"
	invRepo "github.com/fekuna/omnipos-storefront/internal/inventory/repository"
	invUC "github.com/fekuna/omnipos-storefront/internal/inventory/usecase"
	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	orderRepo "github.com/fekuna/omnipos-storefront/internal/order/repository"
	orderUC "github.com/fekuna/omnipos-storefront/internal/order/usecase"
	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodRepo "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUC "github.com/fekuna/omnipos-storefront/internal/product/usecase"
	regionH "github.com/fekuna/omnipos-storefront/internal/region/handler"
	regionRepo "github.com/fekuna/omnipos-storefront/internal/region/repository"
	regionUC "github.com/fekuna/omnipos-storefront/internal/region/usecase"
	subH "github.com/fekuna/omnipos-storefront/internal/subscription/handler"
	subRepo "github.com/fekuna/omnipos-storefront/internal/subscription/repository"
	subUC "github.com/fekuna/omnipos-storefront/internal/subscription/usecase"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/search"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

// Deps are the long-lived clients the router is built from. Cache,
// Publisher and Search are optional.
type Deps struct {
	Config    *config.Config
	DB        *sqlx.DB
	Cache     cache.Cache
	Publisher broker.Publisher
	Search    *search.Client
	Converter *currency.Converter
	Operators *auth.OperatorStore
	Tokens    *auth.TokenIssuer
	Logger    logger.ZapLogger
}

// routes is implemented by every domain handler.
type routes interface {
	RegisterRoutes(r chi.Router)
}

type adminRoutes interface {
	RegisterAdminRoutes(r chi.Router)
}

// NewRouter builds the full HTTP surface: the storefront API under /api,
// the operator API under /admin and a liveness probe at /healthz.
func NewRouter(d Deps) http.Handler {
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Publisher == nil {
		d.Publisher = broker.Noop{}
	}
	if d.Converter == nil {
		d.Converter = currency.NewConverter(currency.DefaultRates())
	}
	cfg := d.Config
	log := d.Logger

	// Repositories
	products := prodRepo.NewPGRepository(d.DB)
	drops := dropRepo.NewPGRepository(d.DB)
	regions := regionRepo.NewPGRepository(d.DB)
	inventory := invRepo.NewPGRepository(d.DB)
	orders := orderRepo.NewPGRepository(d.DB)
	subscribers := subRepo.NewPGRepository(d.DB)
	events := analyticsRepo.NewPGRepository(d.DB)
	tx := database.NewTxManager(d.DB)

	// Use cases
	productUC := prodUC.NewProductUseCase(products, drops, d.Converter, d.Cache, d.Search, prodUC.Options{
		DefaultCurrency: cfg.Currency.Default,
		CacheTTL:        cfg.Redis.TTL,
		SearchIndex:     cfg.Elastic.Index,
	}, log)
	dropUseCase := dropUC.NewDropUseCase(drops, products, d.Cache, cfg.Redis.TTL, log)
	regionUseCase := regionUC.NewRegionUseCase(regions)
	inventoryUC := invUC.NewInventoryUseCase(inventory, tx, d.Cache, log)
	orderUseCase := orderUC.NewOrderUseCase(orderUC.Deps{
		Repo:      orders,
		Inventory: inventory,
		Regions:   regions,
		Tx:        tx,
		Cache:     d.Cache,
		Publisher: d.Publisher,
		Topic:     cfg.Kafka.OrdersTopic,
		Logger:    log,
	})
	subscriptionUC := subUC.NewSubscriptionUseCase(subscribers, log)
	analyticsUseCase := analyticsUC.NewAnalyticsUseCase(events, d.Publisher, cfg.Kafka.AnalyticsTopic, log)
	adminUseCase := adminUC.NewAdminUseCase(products, orders, subscribers, d.Operators, d.Tokens, log)

	// Handlers
	productHandler := prodH.NewProductHandler(productUC, log)
	dropHandler := dropH.NewDropHandler(dropUseCase, log)
	regionHandler := regionH.NewRegionHandler(regionUseCase, log)
	inventoryHandler := invH.NewInventoryHandler(inventoryUC, log)
	orderHandler := orderH.NewOrderHandler(orderUseCase, log)
	subscriptionHandler := subH.NewSubscriptionHandler(subscriptionUC, log)
	analyticsHandler := analyticsH.NewAnalyticsHandler(analyticsUseCase, log)
	adminHandler := adminH.NewAdminHandler(adminUseCase, log)

	public := []routes{productHandler, dropHandler, regionHandler, orderHandler, subscriptionHandler, analyticsHandler}
	admin := []adminRoutes{productHandler, dropHandler, inventoryHandler, orderHandler, subscriptionHandler, adminHandler}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", healthz(d.DB))

	r.Route("/api", func(r chi.Router) {
		for _, h := range public {
			h.RegisterRoutes(r)
		}
	})

	authenticator := auth.Chain{
		auth.NewBearerAuthenticator(d.Tokens, d.Operators),
		auth.NewBasicAuthenticator(d.Operators),
	}
	r.Route("/admin", func(r chi.Router) {
		adminHandler.RegisterPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authenticator, log))
			for _, h := range admin {
				h.RegisterAdminRoutes(r)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func healthz(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
