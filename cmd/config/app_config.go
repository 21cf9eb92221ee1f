package config

import (
	"Donation-Hub/internal/api/handlers"
	"Donation-Hub/internal/api/routes"
	"Donation-Hub/internal/middleware"
	"Donation-Hub/internal/utils"
	"Donation-Hub/internal/utils/mailing"
	"Donation-Hub/internal/utils/metrics"
	"Donation-Hub/internal/utils/storage"
	"Donation-Hub/pkg/account"
	"Donation-Hub/pkg/donation"
	"Donation-Hub/pkg/gemini"
	"Donation-Hub/pkg/jwt"
	"Donation-Hub/pkg/profile"
	"Donation-Hub/pkg/report"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options carries the collaborators NewApp would otherwise build from
// configuration. Zero values mean "build from configuration".
type Options struct {
	JWTService  jwt.JWTService
	Describer   gemini.ImageDescriber
	Storage     storage.AwsS3
	Mailer      mailing.Mailer
	Metrics     *metrics.Metrics
	LogOutput   io.Writer
	RateLimit   int
	Clock       func() time.Time
	SkipStorage bool
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return NewAppWithOptions(db, Options{})
}

func NewAppWithOptions(db *gorm.DB, opts Options) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	output := opts.LogOutput
	if output == nil {
		err := os.MkdirAll("./logs", os.ModePerm)
		if err != nil {
			log.Fatalf("error creating logs directory: %v", err)
		}
		file, err := os.OpenFile(
			"./logs/app.log",
			os.O_RDWR|os.O_CREATE|os.O_APPEND,
			0666,
		)
		if err != nil {
			log.Fatalf("error opening file: %v", err)
		}
		output = file
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     output,
	}))

	rateLimit := opts.RateLimit
	if rateLimit == 0 {
		rateLimit, _ = strconv.Atoi(utils.GetConfig("RATE_LIMIT_PER_SECOND"))
	}
	if rateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: middleware.EncryptCookieKey(utils.GetConfig("SESSION_SECRET")),
	}))
	sessions := middleware.NewSessionManager()
	middlewares := middleware.NewMiddleware(sessions)

	// utils
	s3 := opts.Storage
	if s3 == nil && !opts.SkipStorage {
		s3 = storage.NewAwsS3()
	}
	mailer := opts.Mailer
	if mailer == nil {
		var err error
		mailer, err = mailing.NewMailer(mailing.LoadMailConfig())
		if err != nil {
			return nil, err
		}
	}
	appMetrics := opts.Metrics
	if appMetrics == nil {
		appMetrics = metrics.New()
	}
	describer := opts.Describer
	if describer == nil {
		describer = gemini.NewGeminiService(gemini.LoadConfig())
	}

	// Repository
	accountRepository := account.NewAccountRepository(db)
	profileRepository := profile.NewProfileRepository(db)
	donationRepository := donation.NewDonationRepository(db)

	// Service
	jwtService := opts.JWTService
	if jwtService == nil {
		jwtService = jwt.NewJWTService()
	}
	accountService := account.NewAccountService(accountRepository, jwtService, validator)
	profileService := profile.NewProfileService(profileRepository, validator)
	donationOptions := []donation.Option{
		donation.WithMailer(mailer, utils.GetConfig("APP_URL")),
		donation.WithMetrics(appMetrics),
	}
	if s3 != nil {
		donationOptions = append(donationOptions, donation.WithStorage(s3))
	}
	if opts.Clock != nil {
		donationOptions = append(donationOptions, donation.WithClock(opts.Clock))
	}
	donationService := donation.NewDonationService(donationRepository, profileRepository, accountRepository, validator, donationOptions...)
	reportService := report.NewReportService(profileRepository, donationRepository)

	// Handler
	accountHandler := handlers.NewAccountHandler(accountService, sessions, jwtService)
	profileHandler := handlers.NewProfileHandler(profileService)
	donationHandler := handlers.NewDonationHandler(donationService, describer, appMetrics)
	reportHandler := handlers.NewReportHandler(reportService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AccountHandler:  accountHandler,
		ProfileHandler:  profileHandler,
		DonationHandler: donationHandler,
		ReportHandler:   reportHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
		Metrics:         appMetrics,
	}
	routesConfig.Setup()
	return app, nil
}
