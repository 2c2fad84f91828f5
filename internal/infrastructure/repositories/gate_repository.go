package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// GateRepositoryImpl implements domain.GateRepository using GORM
type GateRepositoryImpl struct {
	db *gorm.DB
}

// DBGate represents the database model for Gate (with GORM tags).
// PhoneNumber is unique among active gates; the partial-unique semantics
// are enforced at the application layer, the column is plainly indexed.
type DBGate struct {
	ID               uint    `gorm:"primaryKey"`
	Name             string  `gorm:"size:128;not null"`
	PhoneNumber      string  `gorm:"index;size:32;not null"`
	AuthorizedNumber string  `gorm:"size:32"`
	Password         string  `gorm:"size:64"`
	Latitude         *float64
	Longitude        *float64
	Address          string `gorm:"size:255"`
	AutoOpenRadius   *float64
	LastOpenedAt     *time.Time
	IsActive         bool      `gorm:"index"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBGate) TableName() string {
	return "gates"
}

// NewGateRepository creates a new gate repository
func NewGateRepository(db *gorm.DB) domain.GateRepository {
	return &GateRepositoryImpl{db: db}
}

// FindByID implements domain.GateRepository
func (r *GateRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Gate, error) {
	var dbGate DBGate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbGate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrGateNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbGate), nil
}

// FindAllActive implements domain.GateRepository
func (r *GateRepositoryImpl) FindAllActive(ctx context.Context) ([]*domain.Gate, error) {
	var dbGates []DBGate
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name").Find(&dbGates).Error; err != nil {
		return nil, err
	}
	gates := make([]*domain.Gate, 0, len(dbGates))
	for i := range dbGates {
		gates = append(gates, r.dbToDomain(&dbGates[i]))
	}
	return gates, nil
}

// Update implements domain.GateRepository
func (r *GateRepositoryImpl) Update(ctx context.Context, gate *domain.Gate) error {
	dbGate := r.domainToDB(gate)
	return r.db.WithContext(ctx).Save(dbGate).Error
}

// domainToDB converts a domain gate to the database model
func (r *GateRepositoryImpl) domainToDB(gate *domain.Gate) *DBGate {
	return &DBGate{
		ID:               gate.ID,
		Name:             gate.Name,
		PhoneNumber:      gate.PhoneNumber,
		AuthorizedNumber: gate.AuthorizedNumber,
		Password:         gate.Password,
		Latitude:         gate.Latitude,
		Longitude:        gate.Longitude,
		Address:          gate.Address,
		AutoOpenRadius:   gate.AutoOpenRadius,
		LastOpenedAt:     gate.LastOpenedAt,
		IsActive:         gate.IsActive,
		CreatedAt:        gate.CreatedAt,
	}
}

// dbToDomain converts a database gate to the domain model
func (r *GateRepositoryImpl) dbToDomain(dbGate *DBGate) *domain.Gate {
	return &domain.Gate{
		ID:               dbGate.ID,
		Name:             dbGate.Name,
		PhoneNumber:      dbGate.PhoneNumber,
		AuthorizedNumber: dbGate.AuthorizedNumber,
		Password:         dbGate.Password,
		Latitude:         dbGate.Latitude,
		Longitude:        dbGate.Longitude,
		Address:          dbGate.Address,
		AutoOpenRadius:   dbGate.AutoOpenRadius,
		LastOpenedAt:     dbGate.LastOpenedAt,
		IsActive:         dbGate.IsActive,
		CreatedAt:        dbGate.CreatedAt,
		UpdatedAt:        dbGate.UpdatedAt,
	}
}
