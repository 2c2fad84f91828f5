package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// Default values for the lazily-created settings singleton
const (
	DefaultCooldownSeconds  = 60
	DefaultMaxRetries       = 5
	DefaultBalanceThreshold = 1.0
	DefaultAutoRefresh      = 30
)

// SettingsRepositoryImpl implements domain.SettingsRepository using GORM.
// AdminSettings is a singleton row, created with defaults on first read.
type SettingsRepositoryImpl struct {
	db *gorm.DB
}

// DBAdminSettings represents the database model for AdminSettings
type DBAdminSettings struct {
	ID                  uint `gorm:"primaryKey"`
	GateCooldownSeconds int
	MaxRetries          int
	SystemMaintenance   bool
	MaintenanceMessage  string `gorm:"size:512"`
	BlockIfLowBalance   bool
	BalanceThreshold    float64
	EnableNotifications bool
	AutoRefreshSeconds  int
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (DBAdminSettings) TableName() string {
	return "admin_settings"
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

// GetCurrent implements domain.SettingsRepository. When no row exists yet
// the singleton is created with defaults, so first boot needs no seeding.
func (r *SettingsRepositoryImpl) GetCurrent(ctx context.Context) (*domain.AdminSettings, error) {
	var dbSettings DBAdminSettings
	err := r.db.WithContext(ctx).First(&dbSettings).Error
	if err == gorm.ErrRecordNotFound {
		dbSettings = DBAdminSettings{
			GateCooldownSeconds: DefaultCooldownSeconds,
			MaxRetries:          DefaultMaxRetries,
			BalanceThreshold:    DefaultBalanceThreshold,
			EnableNotifications: true,
			AutoRefreshSeconds:  DefaultAutoRefresh,
		}
		if err := r.db.WithContext(ctx).Create(&dbSettings).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return r.dbToDomain(&dbSettings), nil
}

// Update implements domain.SettingsRepository
func (r *SettingsRepositoryImpl) Update(ctx context.Context, settings *domain.AdminSettings) error {
	dbSettings := &DBAdminSettings{
		ID:                  settings.ID,
		GateCooldownSeconds: settings.GateCooldownSeconds,
		MaxRetries:          settings.MaxRetries,
		SystemMaintenance:   settings.SystemMaintenance,
		MaintenanceMessage:  settings.MaintenanceMessage,
		BlockIfLowBalance:   settings.BlockIfLowBalance,
		BalanceThreshold:    settings.BalanceThreshold,
		EnableNotifications: settings.EnableNotifications,
		AutoRefreshSeconds:  settings.AutoRefreshSeconds,
	}
	return r.db.WithContext(ctx).Save(dbSettings).Error
}

// dbToDomain converts database settings to the domain model
func (r *SettingsRepositoryImpl) dbToDomain(dbSettings *DBAdminSettings) *domain.AdminSettings {
	return &domain.AdminSettings{
		ID:                  dbSettings.ID,
		GateCooldownSeconds: dbSettings.GateCooldownSeconds,
		MaxRetries:          dbSettings.MaxRetries,
		SystemMaintenance:   dbSettings.SystemMaintenance,
		MaintenanceMessage:  dbSettings.MaintenanceMessage,
		BlockIfLowBalance:   dbSettings.BlockIfLowBalance,
		BalanceThreshold:    dbSettings.BalanceThreshold,
		EnableNotifications: dbSettings.EnableNotifications,
		AutoRefreshSeconds:  dbSettings.AutoRefreshSeconds,
		UpdatedAt:           dbSettings.UpdatedAt,
	}
}
