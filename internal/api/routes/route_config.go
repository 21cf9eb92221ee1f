package routes

import (
	"Donation-Hub/internal/api/handlers"
	"Donation-Hub/internal/middleware"
	"Donation-Hub/internal/utils/metrics"
	"Donation-Hub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	AccountHandler  handlers.AccountHandler
	ProfileHandler  handlers.ProfileHandler
	DonationHandler handlers.DonationHandler
	ReportHandler   handlers.ReportHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
	Metrics         *metrics.Metrics
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	if c.Metrics != nil {
		c.App.Use(c.Metrics.Middleware())
	}
	c.GuestRoute()
	c.Auth()
	c.Donors()
	c.Organizations()
	c.Donations()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	if c.Metrics != nil {
		c.App.Get("/metrics", c.Metrics.Handler())
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.AccountHandler.Register)
		auth.Post("/login", c.AccountHandler.Login)
		auth.Post("/logout", c.AccountHandler.Logout)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.AccountHandler.Me)
	}
}

func (c *Config) Donors() {
	donors := c.App.Group("/api/v1/donors")
	{
		donors.Post("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.ProfileHandler.CreateDonorProfile)
		donors.Get("/details", c.ReportHandler.GetDonorDetails)
		donors.Post("/bulk", c.ReportHandler.GetDonorsByIDs)
		donors.Get("/leaderboard", c.ReportHandler.Leaderboard)
		donors.Get("/:id", c.ProfileHandler.GetDonorProfile)
		donors.Get("/:id/stats", c.ReportHandler.GetDonorStats)
		donors.Get("/:id/monthly-chart", c.ReportHandler.MonthlyChart)
		donors.Get("/:id/donations", c.DonationHandler.ListDonorDonations)
	}
}

func (c *Config) Organizations() {
	organizations := c.App.Group("/api/v1/organizations")
	{
		organizations.Post("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.ProfileHandler.CreateOrganizationProfile)
	}

	pickups := organizations.Group("/pickups", c.Middleware.AuthMiddleware(c.JWTService))
	{
		pickups.Get("/pending", c.DonationHandler.ListPending)
		pickups.Post("/schedule", c.DonationHandler.SchedulePickup)
	}

	requests := organizations.Group("/requests", c.Middleware.AuthMiddleware(c.JWTService))
	{
		requests.Post("/accept", c.DonationHandler.AcceptRequest)
		requests.Post("/decline", c.DonationHandler.DeclineRequest)
		requests.Get("/accepted", c.DonationHandler.ListAccepted)
		requests.Get("/declined", c.DonationHandler.ListDeclined)
	}

	organizations.Get("/:id", c.ProfileHandler.GetOrganizationProfile)
	organizations.Get("/:id/stats", c.ReportHandler.GetOrganizationStats)
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Post("", c.DonationHandler.SubmitDonation)
		donations.Post("/describe", c.DonationHandler.DescribeImage)
	}
}
