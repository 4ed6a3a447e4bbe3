package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/Inovatum/site-vendas/internal/cache"
	"github.com/Inovatum/site-vendas/internal/config"
	"github.com/Inovatum/site-vendas/internal/gateway"
	apphttp "github.com/Inovatum/site-vendas/internal/http"
	"github.com/Inovatum/site-vendas/internal/http/cartid"
	"github.com/Inovatum/site-vendas/internal/modules/auth"
	"github.com/Inovatum/site-vendas/internal/modules/cart"
	"github.com/Inovatum/site-vendas/internal/modules/catalog"
	"github.com/Inovatum/site-vendas/internal/modules/checkout"
	"github.com/Inovatum/site-vendas/internal/modules/coupon"
	"github.com/Inovatum/site-vendas/internal/modules/payments"
	"github.com/Inovatum/site-vendas/internal/modules/settings"
	"github.com/Inovatum/site-vendas/internal/modules/theme"
	"github.com/Inovatum/site-vendas/internal/storage"
)

func main() {
	// .env é só conveniência local; produção usa env de verdade.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gw := gateway.NewRest(gateway.RestConfig{
		BaseURL: cfg.BackendURL,
		AnonKey: cfg.BackendAnonKey,
		Timeout: 15 * time.Second,
	})

	var store cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rc.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, running without cache", "err", err)
		} else {
			store = rc
			defer rc.Close()
		}
	}

	uploads, driver, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("storage ready", "driver", driver)

	catalogSvc := catalog.NewService(gw, store, cfg.CacheTTL, logger)
	settingsSvc := settings.NewService(gw, store, cfg.CacheTTL, logger)
	themeSvc := theme.NewService(gw, store, cfg.CacheTTL, logger)

	carts := cart.NewStore(cart.DefaultTTL)
	done := make(chan struct{})
	defer close(done)
	go carts.Janitor(time.Hour, done)

	cartSvc := cart.NewService(carts, catalogSvc, logger)
	couponEng := coupon.NewEngine(gw, logger)
	pix := payments.NewHTTPProvider(cfg.BackendURL, cfg.BackendAnonKey, 15*time.Second)
	checkoutSvc := checkout.NewService(carts, settingsSvc, couponEng, pix, catalogSvc, logger)

	authDriver := auth.NewDriver(gw, cfg.FallbackAdminUser, cfg.FallbackAdminHash, logger)
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL, auth.NewMemorySessionStore())

	// primeira carga; falha só derruba a flag de conexão, a vitrine
	// sobe offline e tenta de novo a cada request
	warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogSvc.Refresh(warmCtx); err != nil {
		logger.Warn("initial catalog load failed", "err", err)
	}
	if _, err := settingsSvc.Fetch(warmCtx); err != nil {
		logger.Warn("initial settings load failed", "err", err)
	}
	cancel()

	r := apphttp.NewRouter(logger, apphttp.Deps{
		GW:            gw,
		Catalog:       catalogSvc,
		Settings:      settingsSvc,
		Theme:         themeSvc,
		Carts:         cartSvc,
		Coupons:       couponEng,
		Checkout:      checkoutSvc,
		Auth:          authDriver,
		Sessions:      sessions,
		Uploads:       uploads,
		CartCookie:    cartid.New([]byte(cfg.CartCookieSecret), cfg.CartCookieName, cfg.CookieSecure),
		AllowedOrigin: cfg.AllowedOrigin,
	})

	logger.Info("listening", "addr", cfg.Address())
	if err := r.Run(cfg.Address()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
