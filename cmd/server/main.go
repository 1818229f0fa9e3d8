package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	authmetrics "github.com/Flv72S/Eterna-Home-sub001/internal/auth/metrics"
	authservice "github.com/Flv72S/Eterna-Home-sub001/internal/auth/service"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/revocation"
	"github.com/Flv72S/Eterna-Home-sub001/internal/auth/store/user"
	docstore "github.com/Flv72S/Eterna-Home-sub001/internal/document/store"
	housemetrics "github.com/Flv72S/Eterna-Home-sub001/internal/house/metrics"
	houseservice "github.com/Flv72S/Eterna-Home-sub001/internal/house/service"
	housestore "github.com/Flv72S/Eterna-Home-sub001/internal/house/store"
	jwttoken "github.com/Flv72S/Eterna-Home-sub001/internal/jwt_token"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/config"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/database"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/health"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/httpserver"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/logger"
	platformredis "github.com/Flv72S/Eterna-Home-sub001/internal/platform/redis"
	"github.com/Flv72S/Eterna-Home-sub001/internal/seeder"
	httptransport "github.com/Flv72S/Eterna-Home-sub001/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing eterna-home",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthHandler := health.New(cfg.Environment)

	// Storage: Postgres when configured, in-memory otherwise.
	var (
		users     user.Store
		houses    housestore.Store
		documents docstore.Store
	)
	if cfg.DatabaseURL != "" {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		db, err := database.Open(database.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		healthHandler.RegisterCheck("postgres", func(ctx context.Context) error {
			return db.PingContext(ctx)
		})
		users = user.NewPostgres(db)
		houses = housestore.NewPostgres(db)
		documents = docstore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		users = user.NewInMemory()
		houses = housestore.NewInMemory()
		documents = docstore.NewInMemory()
		log.Info("using in-memory storage")
	}

	// Token revocation: Redis when configured, in-memory otherwise.
	var revoked revocation.Store
	redisClient, err := platformredis.New(cfg.RedisAddr)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthHandler.RegisterCheck("redis", redisClient.Health)
		revoked = revocation.NewRedis(redisClient.Client)
		log.Info("using redis token revocation")
	} else {
		revoked = revocation.NewInMemory()
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "eterna-home", cfg.TokenTTL)
	authSvc := authservice.New(users, tokens, revoked, log, authmetrics.New())
	houseSvc := houseservice.New(houses, log, housemetrics.New())

	// Demo data only makes sense against a blank in-memory backend.
	if cfg.Environment == "development" && cfg.DatabaseURL == "" {
		s := seeder.New(users, houseSvc, houses, log)
		if err := s.SeedAll(ctx); err != nil {
			log.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	handler := httptransport.NewHandler(authSvc, houseSvc, documents, log)
	router := httptransport.NewRouter(handler, healthHandler, httptransport.RouterConfig{
		LoginRatePerSecond: cfg.LoginRatePerSecond,
		LoginRateBurst:     cfg.LoginRateBurst,
	}, log)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if redisClient != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					redisClient.RecordPoolStats()
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
