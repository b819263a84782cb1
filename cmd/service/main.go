package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/tienda/internal/auth"
	"github.com/dropDatabas3/tienda/internal/cache"
	"github.com/dropDatabas3/tienda/internal/config"
	"github.com/dropDatabas3/tienda/internal/email"
	authctrl "github.com/dropDatabas3/tienda/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/tienda/internal/http/controllers/health"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
	"github.com/dropDatabas3/tienda/internal/http/router"
	"github.com/dropDatabas3/tienda/internal/http/server"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
	"github.com/dropDatabas3/tienda/internal/observability/metrics"
	"github.com/dropDatabas3/tienda/internal/rate"
	"github.com/dropDatabas3/tienda/internal/store/pg"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// .env es opcional: en prod las variables vienen del entorno.
	_ = godotenv.Load()

	configPath := flag.String("config", "configs/config.example.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: "tienda",
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres: fuente de verdad.
	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MinIdleConns:    cfg.Storage.Postgres.MinIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		logger.L().Fatal("postgres connect failed", logger.Err(err))
	}
	defer store.Close()

	users := pg.NewUserRepo(store.Pool())
	sessions := pg.NewSessionRepo(store.Pool())
	storesRepo := pg.NewStoreRepo(store.Pool())
	products := pg.NewProductRepo(store.Pool())

	// Cache de sesiones y, si hay Redis, rate limiter de login sobre el
	// mismo cliente.
	var (
		sessionCache cache.Client
		loginLimiter rate.Limiter
	)
	if cfg.Cache.Kind == "redis" {
		redisClient := rdb.NewClient(&rdb.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.L().Fatal("redis connect failed", logger.Err(err))
		}
		sessionCache = cache.NewRedisFromClient(redisClient, cfg.Cache.Redis.Prefix)
		if cfg.Rate.Enabled {
			loginLimiter = rate.NewRedisLimiter(redisClient, "rl:login:", cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		}
	} else {
		sessionCache, err = cache.New(cache.Config{Driver: cfg.Cache.Kind, Prefix: cfg.Cache.Redis.Prefix})
		if err != nil {
			logger.L().Fatal("cache init failed", logger.Err(err))
		}
	}
	defer func() { _ = sessionCache.Close() }()

	// Núcleo de autenticación.
	codec := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	verifier := auth.NewVerifier(users)
	manager := auth.NewManager(auth.ManagerDeps{
		Sessions: sessions,
		Cache:    sessionCache,
		Codec:    codec,
		TTL:      cfg.SessionTTL(),
	})

	var notifier auth.Notifier
	if sender := email.NewSMTPSender(email.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		From: cfg.SMTP.From,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
	}); sender != nil {
		notifier = sender
	}

	authService := auth.NewService(auth.ServiceDeps{
		Users:    users,
		Verifier: verifier,
		Sessions: manager,
		Notifier: notifier,
		HashCost: cfg.Hashing.Cost,
	})

	// Métricas.
	metricsHandler, err := metrics.Register(metrics.Config{
		Pool:  func() *pgxpool.Pool { return store.Pool() },
		Cache: sessionCache,
	})
	if err != nil {
		logger.L().Fatal("metrics registration failed", logger.Err(err))
	}

	// Health checks.
	health := healthctrl.NewController(map[string]healthctrl.CheckFunc{
		"postgres": func(ctx context.Context) error { return store.Pool().Ping(ctx) },
		"cache":    sessionCache.Ping,
	})

	handler := router.New(router.Deps{
		AuthService: authService,
		Stores:      storesRepo,
		Products:    products,
		AuthConfig: mw.AuthConfig{
			CookieName:  cfg.Auth.Session.CookieName,
			AllowBearer: cfg.Auth.AllowBearer,
		},
		Cookie: authctrl.CookieConfig{
			Name:     cfg.Auth.Session.CookieName,
			Domain:   cfg.Auth.Session.Domain,
			SameSite: cfg.Auth.Session.SameSite,
			Secure:   cfg.Auth.Session.Secure,
			TTL:      cfg.SessionTTL(),
		},
		LoginLimiter:   loginLimiter,
		MetricsHandler: metricsHandler,
		Health:         health,
	})

	if err := server.Run(ctx, server.Config{Addr: cfg.Server.Addr}, handler); err != nil {
		logger.L().Fatal("server failed", logger.Err(err))
	}
}
