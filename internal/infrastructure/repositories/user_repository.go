package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"column:password"`
	Name         string `gorm:"size:128"`
	Role         string `gorm:"index;size:16"`
	IsActive     bool   `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	GateAccess []DBUserGateAccess `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBUserGateAccess is one per-gate grant row: it authorizes the user for
// the gate and carries the user's auto-open preferences for it.
type DBUserGateAccess struct {
	UserID         uint `gorm:"primaryKey;autoIncrement:false"`
	GateID         uint `gorm:"primaryKey;autoIncrement:false"`
	AutoOpen       bool
	RadiusOverride *float64
	CreatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUserGateAccess) TableName() string {
	return "user_gate_access"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("GateAccess").Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByUsername implements domain.UserRepository. The lookup is
// case-insensitive: "Admin" and "admin" are the same account.
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("GateAccess").Where("LOWER(username) = LOWER(?)", username).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// dbToDomain converts a database user to the domain model
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	gates := make(map[uint]domain.GateAccess, len(dbUser.GateAccess))
	for _, access := range dbUser.GateAccess {
		gates[access.GateID] = domain.GateAccess{
			AutoOpen:       access.AutoOpen,
			RadiusOverride: access.RadiusOverride,
		}
	}
	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		PasswordHash: dbUser.PasswordHash,
		Name:         dbUser.Name,
		Role:         dbUser.Role,
		IsActive:     dbUser.IsActive,
		Gates:        gates,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
