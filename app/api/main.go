package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ghostart/goapi/app/api/docs"
	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/database/mongoclient"
	"github.com/ghostart/goapi/base/delivery"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/base/validator"
	"github.com/ghostart/goapi/domain"
	"github.com/ghostart/goapi/domain/nft"
	mmiddleware "github.com/ghostart/goapi/middleware"
	admin_middleware "github.com/ghostart/goapi/stores/admin/delivery/http/middleware"
	hc_delivery "github.com/ghostart/goapi/stores/healthcheck/delivery/http"
	hc_usecase "github.com/ghostart/goapi/stores/healthcheck/usecase"
	nft_delivery "github.com/ghostart/goapi/stores/nft/delivery/http"
	nft_repository "github.com/ghostart/goapi/stores/nft/repository"
	nft_usecase "github.com/ghostart/goapi/stores/nft/usecase"
)

func newRepo(c ctx.Ctx) nft.Repo {
	switch driver := viper.GetString("store.driver"); driver {
	case "memory":
		c.Info("using in-memory store, data is lost on restart")
		return nft_repository.NewMemory()
	case "mongo":
		c.Info("init mongo")
		client := mongoclient.MustConnect(mongoclient.Config{
			URI:                viper.GetString("mongo.uri"),
			AuthDBName:         viper.GetString("mongo.authDBName"),
			DBName:             viper.GetString("mongo.dbName"),
			EnableSSL:          viper.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: viper.GetFloat64("mongo.poolSizeMultiplier"),
		})
		repo, err := nft_repository.NewMongo(c, client)
		if err != nil {
			c.WithField("err", err).Panic("nft_repository.NewMongo failed")
		}
		return repo
	default:
		c.WithField("driver", driver).Panic("unknown store.driver")
	}
	return nil
}

//	@title			GHOSTART Marketplace API
//	@version		1.0
//	@description	NFT marketplace backend for the GHOSTART World App.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				admin password sent as "Bearer {password}"
func main() {
	if err := loadConfig(os.Args[1:]); err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	defer log.Sync()

	context := ctx.Background()

	// no default secret: refuse to start without one
	adminMiddleware, err := admin_middleware.New(viper.GetString("admin.password"), viper.GetString("admin.passwordHash"))
	if err != nil {
		context.WithField("err", err).Panic("admin_middleware.New failed, set admin.password or GHOSTART_ADMIN_PASSWORD")
	}

	creatorWallet := domain.Address(viper.GetString("creator.wallet"))
	if !validator.IsValidAddress(string(creatorWallet)) {
		context.WithField("creator.wallet", creatorWallet).Panic("invalid creator wallet")
	}

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = delivery.HTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())

	mmiddleware.SetupCache(viper.GetInt("cache.sizeMB"))

	repo := newRepo(context)

	nftUsecase := nft_usecase.New(&nft_usecase.NftUseCaseCfg{
		Repo:           repo,
		CreatorWallet:  creatorWallet,
		CreatorRoyalty: viper.GetInt("creator.royalty"),
		Validator:      validator.New(),
	})

	hc_delivery.New(e, hc_usecase.New(repo))
	nft_delivery.New(e, nftUsecase, adminMiddleware, viper.GetDuration("cache.ttl"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
