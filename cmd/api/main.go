package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopapp/internal/apiclient"
	"shopapp/internal/auth"
	"shopapp/internal/cart"
	"shopapp/internal/catalog"
	"shopapp/internal/config"
	"shopapp/internal/events"
	"shopapp/internal/gallery"
	"shopapp/internal/handler"
	"shopapp/internal/kvstore"
	mw "shopapp/internal/middleware"
	"shopapp/internal/orders"
	"shopapp/internal/server"
	"shopapp/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newLogger(goEnv string) (*zap.Logger, error) {
	if goEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// KV_BACKENDに応じた永続化アダプタを選ぶ
func newKVStore(cfg config.Config) (kvstore.Store, error) {
	switch cfg.KVBackend {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return kvstore.NewGormStore(db)
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return kvstore.NewGormStore(db)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return kvstore.NewRedisStore(client, cfg.RedisPrefix), nil
	default:
		return kvstore.NewMemoryStore(), nil
	}
}

func main() {
	//.envがあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store, err := newKVStore(cfg)
	if err != nil {
		logger.Fatal("kvstore init failed", zap.Error(err))
	}

	ctx := context.Background()

	//中核の組み立て
	catalogStore := catalog.NewStore()
	ledger := cart.NewLedger(ctx, store, cart.Config{EnforceStock: cfg.EnforceStock}, logger)
	defer ledger.Close()

	issuer := auth.NewTokenIssuer(cfg.SessionSecret, 24*time.Hour)
	authSvc := auth.NewService(ctx, store, issuer, logger)

	//注文APIは設定されたときだけ
	var ordersClient *orders.Client
	if cfg.OrdersAPIURL != "" {
		ordersClient = orders.NewClient(apiclient.New(cfg.OrdersAPIURL, store))
	}

	//カメラは境界の向こう側（サーバ構成では未接続）
	photoGallery := gallery.New(ctx, nil, store, logger)

	//NATS中継は設定されたときだけ
	if cfg.NATSURL != "" {
		bridge, err := events.Connect(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn("nats connect failed, events disabled", zap.Error(err))
		} else {
			bridge.BindCart(ledger)
			bridge.BindCatalog(catalogStore)
			defer bridge.Close()
		}
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(catalogStore)
	cartUC := usecase.NewCartUsecase(ledger, catalogStore, ordersClient)
	authUC := usecase.NewAuthUsecase(authSvc)
	photoUC := usecase.NewPhotoUsecase(photoGallery)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	authH := handler.NewAuthHandler(authUC)
	photoH := handler.NewPhotoHandler(photoUC)

	e := server.New(productH, cartH, authH, photoH, mw.Session(issuer), logger)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	//Server起動
	go func() {
		if err := server.Start(e, addr); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", addr), zap.String("kv_backend", cfg.KVBackend))

	//シグナルで停止
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutCtx, e); err != nil {
		logger.Warn("shutdown failed", zap.Error(err))
	}

	//積まれた書き込みをはかせてから終了
	ledger.Flush()
}
