package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/config"
	"github.com/you/gatesvc/internal/infrastructure/auth"
	"github.com/you/gatesvc/internal/infrastructure/database"
	"github.com/you/gatesvc/internal/infrastructure/repositories"
	"github.com/you/gatesvc/internal/infrastructure/telephony"
	"github.com/you/gatesvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	GateRepo      domain.GateRepository
	UserRepo      domain.UserRepository
	HistoryRepo   domain.HistoryRepository
	SettingsRepo  domain.SettingsRepository
	SessionRepo   domain.SessionRepository
	ProximityRepo domain.ProximitySessionRepository

	// Services
	PasswordSvc  domain.PasswordService
	TokenSvc     domain.TokenService
	TelephonySvc domain.TelephonyService
	AuthSvc      domain.AuthService
	Opener       domain.GateOpener
	Proximity    domain.ProximityEngine
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.GateRepo = repositories.NewGateRepository(c.DB)
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.HistoryRepo = repositories.NewHistoryRepository(c.DB)
	c.SettingsRepo = repositories.NewSettingsRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.ProximityRepo = repositories.NewProximitySessionRepository(c.RedisClient, c.Config.ProximitySessionTTL)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.TelephonySvc = telephony.NewTwilioService(c.Config.TwilioSID, c.Config.TwilioToken)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.Config.RefreshTTL,
		c.Config.AccessTTL,
	)

	clock := services.SystemClock{}
	c.Opener = services.NewOpenerService(
		c.GateRepo,
		c.HistoryRepo,
		c.SettingsRepo,
		c.TelephonySvc,
		clock,
		c.Config.StatusCallbackURL,
	)
	c.Proximity = services.NewProximityService(
		c.GateRepo,
		c.ProximityRepo,
		c.SettingsRepo,
		c.Opener,
		clock,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
