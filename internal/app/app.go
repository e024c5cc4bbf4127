package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/digimonhq/digimon-service/internal/config"
	"github.com/digimonhq/digimon-service/internal/handler"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/digimonhq/digimon-service/internal/service"
	"github.com/digimonhq/digimon-service/internal/utils"
	"github.com/digimonhq/digimon-service/pkg/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth        *handler.AuthHandler
	user        *handler.UserHandler
	item        *handler.ItemHandler
	merchant    *handler.MerchantHandler
	wallet      *handler.WalletHandler
	transaction *handler.TransactionHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(repos.User, jwtManager)
	userService := service.NewUserService(repos.User, cfg.Security.BCryptCost)

	limits := handler.PageLimits{
		DefaultSize: cfg.Pagination.DefaultSize,
		MaxSize:     cfg.Pagination.MaxSize,
	}

	h := handlers{
		auth:        handler.NewAuthHandler(authService),
		user:        handler.NewUserHandler(userService),
		item:        handler.NewItemHandler(repos.Item, limits),
		merchant:    handler.NewMerchantHandler(repos.Merchant, limits),
		wallet:      handler.NewWalletHandler(repos.Wallet, limits),
		transaction: handler.NewTransactionHandler(repos.Transaction, limits),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("digimon-service"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, h, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	throttled := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)
	authorized := handler.AuthMiddleware(authService)

	router.POST("/token", throttled, h.auth.Token)
	router.POST("/token/refresh", h.auth.Refresh)

	users := router.Group("/users")
	{
		users.POST("/create", throttled, h.user.Register)
		users.GET("/me", authorized, h.user.GetMe)
		users.GET("/:id", authorized, h.user.Get)
		users.PUT("/:id/update", authorized, h.user.Update)
		users.PUT("/:id/change_password", authorized, h.user.ChangePassword)
	}

	items := router.Group("/items", authorized)
	{
		items.POST("", h.item.Create)
		items.GET("", h.item.List)
		items.GET("/:id", h.item.Get)
		items.PUT("/:id", h.item.Update)
		items.DELETE("/:id", h.item.Delete)
	}

	merchants := router.Group("/merchants", authorized)
	{
		merchants.POST("", h.merchant.Create)
		merchants.GET("", h.merchant.List)
		merchants.GET("/:id", h.merchant.Get)
		merchants.PUT("/:id", h.merchant.Update)
		merchants.DELETE("/:id", h.merchant.Delete)
	}

	wallets := router.Group("/wallets", authorized)
	{
		wallets.POST("", h.wallet.Create)
		wallets.GET("", h.wallet.List)
		wallets.GET("/:id", h.wallet.Get)
		wallets.PUT("/:id", h.wallet.Update)
		wallets.DELETE("/:id", h.wallet.Delete)
	}

	transactions := router.Group("/transactions", authorized)
	{
		transactions.POST("", h.transaction.Create)
		transactions.GET("", h.transaction.List)
		transactions.GET("/:id", h.transaction.Get)
		transactions.PUT("/:id", h.transaction.Update)
		transactions.DELETE("/:id", h.transaction.Delete)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
