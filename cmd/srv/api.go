package main

import (
	"net/http"

	"github.com/tokenmart/backend/internal/middleware"
	"github.com/tokenmart/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/login", s.authDomain.Login)

		router.GET(publicRouter, "/getToken", s.nftDomain.Get)
		router.GET(publicRouter, "/searchTokens", s.nftDomain.Search)
		router.GET(publicRouter, "/getTokenHistory", s.nftDomain.GetHistory)
		router.GET(publicRouter, "/getTrendingTokens", s.nftDomain.GetTrending)

		router.GET(publicRouter, "/getAuction", s.auctionDomain.Get)
		router.GET(publicRouter, "/getAuctionsByToken", s.auctionDomain.GetByToken)
		router.GET(publicRouter, "/getRemainingTime", s.auctionDomain.GetRemainingTime)
	}

	// These APIs need an authenticated caller.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		// Token API
		router.POST(authRouter, "/createToken", s.nftDomain.Create)
		router.POST(authRouter, "/transferToken", s.nftDomain.Transfer)
		router.POST(authRouter, "/setTokenForSale", s.nftDomain.SetForSale)
		router.POST(authRouter, "/removeTokenFromSale", s.nftDomain.RemoveFromSale)
		router.POST(authRouter, "/buyToken", s.nftDomain.Buy)

		// Auction API
		router.POST(authRouter, "/createAuction", s.auctionDomain.Create)
		router.POST(authRouter, "/bid", s.auctionDomain.Bid)
		router.POST(authRouter, "/endAuction", s.auctionDomain.End)

		// Balance API
		router.GET(authRouter, "/getMyBalance", s.balanceDomain.GetMyBalance)
		router.POST(authRouter, "/deposit", s.balanceDomain.Deposit)
	}
}
