package main

import (
	"context"
	"log"
	"os"
	"time"

	"tickify/config"
	"tickify/internal/cache"
	"tickify/internal/database"
	"tickify/internal/handler"
	"tickify/internal/queue"
	"tickify/internal/repository"
	"tickify/internal/service"
	"tickify/internal/worker"
	"tickify/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	defer logger.Sync()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	withdrawalRepo := repository.NewWithdrawalRepository(pool)
	broadcastRepo := repository.NewBroadcastRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	// infra
	inventoryManager := cache.NewRedisTicketInventoryManager(rdb)

	hostname, _ := os.Hostname()
	orderQueue, err := queue.NewRedisStreamOrderQueue(rdb, hostname, nil)
	if err != nil {
		log.Fatalf("Failed to initialize order queue: %v", err)
	}

	// services
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, ticketRepo, inventoryManager)
	ticketService := service.NewTicketService(ticketRepo)
	promoService := service.NewPromoService(promoRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	checkoutService := service.NewCheckoutService(pool, orderRepo, ticketRepo, promoRepo, promoService, settingsService, inventoryManager, orderQueue)
	orderService := service.NewOrderService(pool, orderRepo, ticketRepo)
	withdrawalService := service.NewWithdrawalService(pool, withdrawalRepo, settingsService)
	broadcastService := service.NewBroadcastService(broadcastRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	// worker：把隊列裡的訂單落庫
	orderWorker := worker.NewOrderWorker(checkoutService, orderQueue)
	if err := orderWorker.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start order worker: %v", err)
	}

	router := handler.NewRouter(handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		Event:      handler.NewEventHandler(eventService, ticketService),
		Ticket:     handler.NewTicketHandler(ticketService),
		Checkout:   handler.NewCheckoutHandler(checkoutService, promoService, settingsService),
		Order:      handler.NewOrderHandler(orderService),
		Promo:      handler.NewPromoHandler(promoService),
		Withdrawal: handler.NewWithdrawalHandler(withdrawalService),
		Admin:      handler.NewAdminHandler(settingsService, userService, analyticsService, broadcastService),
	}, authService, cfg.Server.AllowedOrigins)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
