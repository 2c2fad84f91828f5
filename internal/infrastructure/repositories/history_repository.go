package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
)

// HistoryRepositoryImpl implements domain.HistoryRepository using GORM.
// The table is append-only: records are never updated or deleted.
type HistoryRepositoryImpl struct {
	db *gorm.DB
}

// DBAttemptRecord represents the database model for AttemptRecord
type DBAttemptRecord struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"index:idx_attempts_pair"`
	GateID       uint      `gorm:"index:idx_attempts_pair"`
	Username     string    `gorm:"size:64"`
	GateName     string    `gorm:"size:128"`
	Timestamp    time.Time `gorm:"index"`
	Success      bool
	ErrorMessage string `gorm:"size:512"`
	CallSID      string `gorm:"size:64"`
	AutoOpened   bool
	Cost         float64
}

// TableName returns the table name for GORM
func (DBAttemptRecord) TableName() string {
	return "attempt_records"
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) domain.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

// Append implements domain.HistoryRepository
func (r *HistoryRepositoryImpl) Append(ctx context.Context, record *domain.AttemptRecord) error {
	dbRecord := &DBAttemptRecord{
		UserID:       record.UserID,
		GateID:       record.GateID,
		Username:     record.Username,
		GateName:     record.GateName,
		Timestamp:    record.Timestamp,
		Success:      record.Success,
		ErrorMessage: record.ErrorMessage,
		CallSID:      record.CallSID,
		AutoOpened:   record.AutoOpened,
		Cost:         record.Cost,
	}
	if err := r.db.WithContext(ctx).Create(dbRecord).Error; err != nil {
		return err
	}
	record.ID = dbRecord.ID
	return nil
}

// FindRecent implements domain.HistoryRepository. Records come back oldest
// first, scoped to one (user,gate) pair.
func (r *HistoryRepositoryImpl) FindRecent(ctx context.Context, userID, gateID uint, since time.Time) ([]domain.AttemptRecord, error) {
	var dbRecords []DBAttemptRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gate_id = ? AND timestamp >= ?", userID, gateID, since).
		Order("timestamp").
		Find(&dbRecords).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.AttemptRecord, 0, len(dbRecords))
	for _, dbRecord := range dbRecords {
		records = append(records, domain.AttemptRecord{
			ID:           dbRecord.ID,
			UserID:       dbRecord.UserID,
			GateID:       dbRecord.GateID,
			Username:     dbRecord.Username,
			GateName:     dbRecord.GateName,
			Timestamp:    dbRecord.Timestamp,
			Success:      dbRecord.Success,
			ErrorMessage: dbRecord.ErrorMessage,
			CallSID:      dbRecord.CallSID,
			AutoOpened:   dbRecord.AutoOpened,
			Cost:         dbRecord.Cost,
		})
	}
	return records, nil
}
