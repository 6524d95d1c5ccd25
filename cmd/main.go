package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"attar/internal/config"
	httpapi "attar/internal/http"
	"attar/internal/repository"
	"attar/internal/service"
	"attar/internal/session"

	_ "attar/docs"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load(log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		products  repository.ProductRepository
		customers repository.CustomerRepository
		orders    repository.OrderRepository
		reviews   repository.ReviewRepository
		admins    repository.AdminRepository
	)

	if cfg.MongoURI != "" {
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.WithError(err).Fatal("mongodb connection failed")
		}
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			log.WithError(err).Fatal("mongodb index creation failed")
		}
		products = repository.NewMongoProducts(db)
		customers = repository.NewMongoCustomers(db)
		orders = repository.NewMongoOrders(db)
		reviews = repository.NewMongoReviews(db)
		admins = repository.NewMongoAdmins(db)
		log.WithField("database", cfg.MongoDatabase).Info("using mongodb storage")
	} else {
		store := repository.NewMemoryStore()
		products = store
		customers = repository.NewMemoryCustomers(store)
		orders = repository.NewMemoryOrders(store)
		reviews = repository.NewMemoryReviews(store)
		admins = repository.NewMemoryAdmins(store)
		log.Info("MONGO_URI not set, using in-memory storage")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	cartSvc := service.NewCartService(products)
	authSvc := service.NewAuthService(admins)

	if cfg.AdminPassword != "" {
		if _, err := authSvc.CreateAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			if errors.Is(err, repository.ErrDuplicateUsername) {
				log.WithField("username", cfg.AdminUsername).Info("admin already seeded")
			} else {
				log.WithError(err).Warn("admin seed skipped")
			}
		}
	}

	srv := httpapi.NewServer(sessions, httpapi.Services{
		Products:  service.NewProductService(products),
		Cart:      cartSvc,
		Orders:    service.NewOrderService(cartSvc, customers, orders, log),
		Customers: service.NewCustomerService(customers),
		Reviews:   service.NewReviewService(reviews, products),
		Auth:      authSvc,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.WithField("addr", httpServer.Addr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	if err := rdb.Close(); err != nil {
		log.WithError(err).Error("redis close error")
	}
}
