package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/QuaKeyz/reselling-store/config"
	"github.com/QuaKeyz/reselling-store/controllers"
	"github.com/QuaKeyz/reselling-store/database"
	"github.com/QuaKeyz/reselling-store/middleware"
	"github.com/QuaKeyz/reselling-store/pkg/clock"
	"github.com/QuaKeyz/reselling-store/pkg/logger"
	"github.com/QuaKeyz/reselling-store/repository"
	"github.com/QuaKeyz/reselling-store/routes"
	"github.com/QuaKeyz/reselling-store/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	var (
		ledger   repository.OrderLedger
		products repository.ProductRepository
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if err := database.Connect(cfg); err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		ledger = repository.NewGormOrderLedger(database.DB)
		products = repository.NewGormProductRepository(database.DB)
	default:
		store, err := repository.OpenFileStore(cfg.StoreFile)
		if err != nil {
			log.Fatal("Failed to open store file: ", err)
		}
		ledger = repository.NewFileOrderLedger(store)
		products = repository.NewFileProductRepository(store)
	}

	clk := clock.NewSystem()
	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.Currency, cfg.SuccessURL, cfg.CancelURL)
	resolver := services.NewResolverService(products)
	checkouts := services.NewCheckoutService(resolver, ledger, stripeSvc, clk, logger.Log)
	confirmations := services.NewConfirmationService(ledger, products, clk, logger.Log)
	credentials := services.NewCredentialService(
		cfg.AdminPasswordHash,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLMinutes)*time.Minute,
		clk,
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:        controllers.NewAuthController(credentials, logger.Log),
		Products:    controllers.NewProductController(products, logger.Log),
		Checkout:    controllers.NewCheckoutController(checkouts, logger.Log),
		Orders:      controllers.NewOrderController(ledger, logger.Log),
		Webhook:     controllers.NewWebhookController(stripeSvc, confirmations, logger.Log),
		Credentials: credentials,
		LoginLimit:  middleware.NewRateLimiter(rate.Every(time.Minute/10), 5),
	})

	log.Println("Store API running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
