package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/epicbeats/internal/config"
	"github.com/Skotchmaster/epicbeats/internal/db"
	"github.com/Skotchmaster/epicbeats/internal/events"
	"github.com/Skotchmaster/epicbeats/internal/httpserver"
	"github.com/Skotchmaster/epicbeats/internal/logging"
	middleware "github.com/Skotchmaster/epicbeats/internal/middleware/auth"
	"github.com/Skotchmaster/epicbeats/internal/repo"
	"github.com/Skotchmaster/epicbeats/internal/search"
	"github.com/Skotchmaster/epicbeats/internal/service"
	"github.com/Skotchmaster/epicbeats/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.SecretKey, "SECRET_KEY")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(ctx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	} else {
		logger.Warn("kafka disabled", "reason", "KAFKA_BROKERS is empty", "password_reset", "unavailable")
	}

	catalogSvc := &service.CatalogService{
		Repo:      repo.NewCatalogRepo(gdb),
		Publisher: publisher,
		Topic:     cfg.CatalogTopic,
	}
	if index := newSearchIndex(cfg, logger); index != nil {
		catalogSvc.Index = index
	}

	tokenSvc := tokens.NewService(cfg.SecretKey)
	authSvc := &service.AuthService{
		Repo:      repo.NewUserRepo(gdb),
		Tokens:    tokenSvc,
		Publisher: publisher,
		Topic:     cfg.UserTopic,
	}

	e := httpserver.New(logger)
	httpserver.Register(e, &httpserver.Deps{
		InstrumentalHandler: &httpserver.InstrumentalHTTP{Svc: catalogSvc},
		AuthHandler:         &httpserver.AuthHTTP{Svc: authSvc, CookieSecure: cfg.CookieSecure},
		Session:             middleware.NewSessionMiddleware(tokenSvc, cfg.CookieSecure),
		Ready:               func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdown(logger, srv, gdb, publisher)
}

// newSearchIndex returns nil when Elasticsearch is not configured or not reachable.
func newSearchIndex(cfg config.Config, logger *slog.Logger) *search.Index {
	if len(cfg.ESAddresses) == 0 {
		logger.Warn("search disabled", "reason", "ES_URL is empty")
		return nil
	}

	client, err := search.NewClient(cfg.ESAddresses, cfg.ESUsername, cfg.ESPassword)
	if err != nil {
		logger.Error("search disabled", "reason", "cannot create client", "error", err)
		return nil
	}

	index := search.NewIndex(client, cfg.ESIndex)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := index.Ping(ctx); err != nil {
		logger.Error("search disabled", "reason", "elasticsearch is not reachable", "error", err)
		return nil
	}
	return index
}

func shutdown(logger *slog.Logger, srv *http.Server, gdb *gorm.DB, publisher events.Publisher) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}
	logger.Info("stopped")
}
