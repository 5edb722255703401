package main

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/petrbank/ledger-core/pkg/configpkg"
	"github.com/petrbank/ledger-core/pkg/tokenpkg"

	"github.com/petrbank/ledger-core/internal/accountdelivery"
	"github.com/petrbank/ledger-core/internal/accountservice"
	"github.com/petrbank/ledger-core/internal/auditrepo"
	"github.com/petrbank/ledger-core/internal/balancedelivery"
	"github.com/petrbank/ledger-core/internal/balancerepo"
	"github.com/petrbank/ledger-core/internal/balanceservice"
	"github.com/petrbank/ledger-core/internal/depositdelivery"
	"github.com/petrbank/ledger-core/internal/depositrepo"
	"github.com/petrbank/ledger-core/internal/depositservice"
	"github.com/petrbank/ledger-core/internal/eventpub"
	"github.com/petrbank/ledger-core/internal/fundlockdelivery"
	"github.com/petrbank/ledger-core/internal/fundlockrepo"
	"github.com/petrbank/ledger-core/internal/fundlockservice"
	"github.com/petrbank/ledger-core/internal/ledgerrepo"
	"github.com/petrbank/ledger-core/internal/middleware"
	"github.com/petrbank/ledger-core/internal/otpstore"
	"github.com/petrbank/ledger-core/internal/transferdelivery"
	"github.com/petrbank/ledger-core/internal/transferrepo"
	"github.com/petrbank/ledger-core/internal/transferservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	conn, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	auditRepo := auditrepo.NewRepoPGS(conn)
	balanceRepo := balancerepo.NewRepoPGS(conn)
	fundLockRepo := fundlockrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	depositRepo := depositrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddress})
	otpStore := otpstore.NewRedisStore(redisClient, config.SecondFactorTTL, nil)

	transferEvents := eventpub.NewKafkaPublisher(config.KafkaBroker, config.KafkaTransfersTopic)

	accountService := accountservice.New(ledgerRepo, auditRepo)
	balanceService := balanceservice.New(balanceRepo)
	fundLockService := fundlockservice.New(fundLockRepo)
	transferService := transferservice.New(transferRepo, balanceService, accountService, otpStore, transferEvents)
	depositService := depositservice.New(depositRepo, fundLockService)

	accountHandler := accountdelivery.NewHandler(accountService)
	balanceHandler := balancedelivery.NewHandler(balanceService)
	fundLockHandler := fundlockdelivery.NewHandler(fundLockService)
	transferHandler := transferdelivery.NewHandler(transferService)
	depositHandler := depositdelivery.NewHandler(depositService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Open)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.GET("/accounts/:number/statement", accountHandler.Statement)
	authRoutes.PATCH("/accounts/:number/status", accountHandler.SetStatus)

	authRoutes.POST("/accounts/:number/debit", balanceHandler.Debit)
	authRoutes.POST("/accounts/:number/credit", balanceHandler.Credit)
	authRoutes.POST("/accounts/:number/hold", balanceHandler.Hold)
	authRoutes.POST("/accounts/:number/release", balanceHandler.ReleaseHold)

	authRoutes.POST("/locks", fundLockHandler.Lock)
	authRoutes.GET("/locks/:id", fundLockHandler.Get)
	authRoutes.POST("/locks/:id/release", fundLockHandler.Unlock)
	authRoutes.POST("/locks/release-by-reference", fundLockHandler.UnlockByReference)

	authRoutes.POST("/transfers", transferHandler.Initiate)
	authRoutes.GET("/transfers/:id", transferHandler.Get)
	authRoutes.POST("/transfers/:id/confirm", transferHandler.Confirm)
	authRoutes.POST("/transfers/:id/cancel", transferHandler.Cancel)

	authRoutes.POST("/deposits", depositHandler.Open)
	authRoutes.GET("/deposits/:id", depositHandler.Get)
	authRoutes.POST("/deposits/:id/close", depositHandler.Close)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", accountdelivery.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	return server, nil
}
