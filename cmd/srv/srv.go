package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/tokenmart/backend/config"
	"github.com/tokenmart/backend/internal/client"
	"github.com/tokenmart/backend/internal/domain"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/migration"
	"github.com/tokenmart/backend/pkg/clock"
	"github.com/tokenmart/backend/pkg/logger"
	"github.com/tokenmart/backend/pkg/router"
	"github.com/tokenmart/backend/pkg/xcontext"
	"github.com/tokenmart/backend/pkg/xredis"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client

	nftRepo     repository.NftRepository
	auctionRepo repository.AuctionRepository
	balanceRepo repository.BalanceRepository
	nftTxRepo   repository.NftTxRepository

	paymentCaller client.PaymentCaller

	authDomain    domain.AuthDomain
	nftDomain     domain.NftDomain
	auctionDomain domain.AuctionDomain
	balanceDomain domain.BalanceDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func (s *srv) loadConfig() {
	tokenExpiration, err := time.ParseDuration(getEnv("ACCESS_TOKEN_EXPIRATION", "24h"))
	if err != nil {
		panic(err)
	}

	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "tokenmart"),
			User:     getEnv("MYSQL_USER", "tokenmart"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", "0.0.0.0"),
			Port: getEnv("API_PORT", "8080"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: tokenExpiration,
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
	}
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.INFO)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
	s.ctx = xcontext.WithDB(s.ctx, s.db)

	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		// Trending is best effort, the market runs without it.
		s.logger.Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.nftRepo = repository.NewNftRepository()
	s.auctionRepo = repository.NewAuctionRepository()
	s.balanceRepo = repository.NewBalanceRepository()
	s.nftTxRepo = repository.NewNftTxRepository()
}

func (s *srv) loadDomains() {
	s.paymentCaller = client.NewLedgerPaymentCaller(s.balanceRepo)

	s.authDomain = domain.NewAuthDomain()
	s.nftDomain = domain.NewNftDomain(
		s.nftRepo, s.auctionRepo, s.nftTxRepo, s.paymentCaller, s.redisClient)
	s.auctionDomain = domain.NewAuctionDomain(
		s.auctionRepo, s.nftRepo, s.nftTxRepo, s.paymentCaller, s.redisClient,
		clock.NewSystemClock())
	s.balanceDomain = domain.NewBalanceDomain(s.balanceRepo)
}
