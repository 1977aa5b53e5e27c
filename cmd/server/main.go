package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-auth-system/chain"
	"product-auth-system/conf"
	"product-auth-system/controller"
	"product-auth-system/controller/handler"
	"product-auth-system/database"
	"product-auth-system/service/fraud_service"
	"product-auth-system/service/product_service"
	"product-auth-system/service/tag_service"
	"product-auth-system/storage"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

// @title           Product Authentication API
// @version         1.0
// @description     Tag lifecycle, blockchain stamping, and scan fraud-risk assessment service

// @contact.name   API Support

// @host      localhost:7291
// @BasePath  /api/v1

// @schemes https http

func main() {
	// Initialize all components
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Product auth API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down product auth service...")

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	} else if ENV == "example" {
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, network=%s, port=%s", ENV, conf.Cfg.Chain.Network, conf.Cfg.Port)

	// Initialize database
	if err := initDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Printf("Database initialized: type=%s", database.GetDBType())

	// Initialize Redis (optional, won't fail if disabled or unavailable)
	if err := database.InitRedis(); err != nil {
		log.Printf("Redis initialization failed (redis-backed cache disabled): %v", err)
	}

	// Initialize storage
	stor, err := storage.NewStorage()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage initialized: type=%s", conf.Cfg.Storage.Type)

	// Contract gateway client
	ledger := chain.NewGatewayClient(
		conf.Cfg.Chain.GatewayUrl,
		conf.Cfg.Chain.ApiKey,
		time.Duration(conf.Cfg.Chain.TimeoutSeconds)*time.Second,
	)

	// Risk assessor (optional; fallback rules apply when disabled)
	var assessor fraud_service.Assessor
	if conf.Cfg.Assessor.Enabled {
		assessor = fraud_service.NewLLMAssessor(
			conf.Cfg.Assessor.ApiUrl,
			conf.Cfg.Assessor.ApiKey,
			conf.Cfg.Assessor.Model,
			time.Duration(conf.Cfg.Assessor.TimeoutSeconds)*time.Second,
		)
		log.Printf("LLM risk assessor enabled: model=%s", conf.Cfg.Assessor.Model)
	} else {
		log.Println("LLM risk assessor disabled, using fallback rules")
	}

	// Risk cache backend
	cache := initRiskCache()

	// Services
	fraudService := fraud_service.NewFraudService(assessor, cache,
		time.Duration(conf.Cfg.Fraud.CacheTTLSeconds)*time.Second)
	scanService := fraud_service.NewScanService(database.DB, fraudService)

	builder := tag_service.NewMetadataBuilder(database.DB,
		conf.Cfg.Chain.Network, conf.Cfg.Chain.ExplorerUrl, conf.Cfg.Verify.BaseUrl)
	stampingService := tag_service.NewStampingService(database.DB, stor, ledger,
		tag_service.NewQRRenderer(), builder)
	statusService := tag_service.NewStatusService(database.DB, ledger)
	tagService := tag_service.NewTagService(database.DB, fraudService)
	productService := product_service.NewProductService(database.DB)

	// Setup router
	router := controller.SetupRouter(controller.Handlers{
		Tag:     handler.NewTagHandler(stampingService, statusService, tagService),
		Product: handler.NewProductHandler(productService),
		Scan:    handler.NewScanHandler(scanService),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Port,
		Handler: router,
	}

	// Return server and cleanup function
	cleanup := func() {
		if database.DB != nil {
			database.DB.Close()
		}
		if err := database.CloseRedis(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}

	return srv, cleanup
}

// initDatabase initialize database based on configuration
func initDatabase() error {
	dbType := database.DBType(conf.Cfg.Database.Type)

	switch dbType {
	case database.DBTypeMySQL:
		config := &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		}
		return database.InitDatabase(database.DBTypeMySQL, config)

	case database.DBTypePebble:
		config := &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		}
		return database.InitDatabase(database.DBTypePebble, config)

	default:
		log.Printf("Database type not specified, defaulting to MySQL")
		config := &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		}
		return database.InitDatabase(database.DBTypeMySQL, config)
	}
}

// initRiskCache pick the risk cache backend from configuration
func initRiskCache() fraud_service.RiskCache {
	if conf.Cfg.Fraud.CacheBackend == "redis" && database.IsRedisEnabled() {
		log.Println("Risk cache backend: redis")
		return fraud_service.NewRedisRiskCache(database.RedisClient)
	}

	log.Println("Risk cache backend: memory")
	return fraud_service.NewMemoryRiskCache(
		time.Duration(conf.Cfg.Fraud.SweepSeconds) * time.Second)
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Product auth API service starting on port %s...", conf.Cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
