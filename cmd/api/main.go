package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/revuo/company-reviews/internal/admin"
	"github.com/revuo/company-reviews/internal/broker"
	"github.com/revuo/company-reviews/internal/config"
	"github.com/revuo/company-reviews/internal/db"
	"github.com/revuo/company-reviews/internal/handlers"
	"github.com/revuo/company-reviews/internal/repository"
	"github.com/revuo/company-reviews/internal/service"
)

func main() {
	cfg := config.Load()

	_ = config.InitLogger(cfg.LogLevel)
	slog.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB)

	// one-off admin jobs
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			client, err := db.NewMongoClient(cfg.MongoURI)
			if err != nil {
				slog.Error("mongo_connect_error", "err", err)
				os.Exit(1)
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			database := client.Database(cfg.MongoDB)
			companies := repository.NewCompanyRepository(database)
			users := repository.NewUserRepository(database)
			if err := admin.SeedDemoData(context.Background(), companies, users, slog.Default()); err != nil {
				slog.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			slog.Info("seed_done")
			return
		default:
			slog.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.MongoDB)
	companies := repository.NewCompanyRepository(database)
	reviews := repository.NewReviewRepository(database)
	users := repository.NewUserRepository(database)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := companies.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("company indexes: %v", err)
		}
		if err := reviews.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("review indexes: %v", err)
		}
		cancel()
	}

	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbitmq connect error: %v", err)
	}
	defer pub.Close()

	companySvc := service.NewCompanyService(companies, slog.Default())
	reviewSvc := service.NewReviewService(companies, reviews, users, slog.Default())

	ch := handlers.NewCompanyHandler(companySvc, pub)
	rh := handlers.NewReviewHandler(reviewSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", ch.Health)
	mux.HandleFunc("/api/companies", ch.Companies)
	mux.HandleFunc("/api/companies/", ch.CompanyByID)
	mux.HandleFunc("/api/reviews", rh.Reviews)
	mux.HandleFunc("/api/reviews/company/", rh.ReviewsByCompany)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown error", "err", err)
	}
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
