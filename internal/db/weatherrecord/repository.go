package weatherrecord

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var (
	// ErrNotFound means the id is well formed but no record matches it.
	ErrNotFound = errors.New("weather record not found")
	// ErrInvalidID means the id does not match the store's id format.
	ErrInvalidID = errors.New("malformed weather record id")
)

type Repository interface {
	List(ctx context.Context, city string, limit int) ([]WeatherRecord, error)
	GetByID(ctx context.Context, id string) (*WeatherRecord, error)
	Create(ctx context.Context, record *WeatherRecord) (*WeatherRecord, error)
	ReplaceByID(ctx context.Context, id string, record *WeatherRecord) (*WeatherRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

func (r *WeatherSQLRepository) List(ctx context.Context, city string, limit int) ([]WeatherRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := r.db.WithContext(ctx).Order("fetched_at DESC").Limit(limit)
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var records []WeatherRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *WeatherSQLRepository) GetByID(ctx context.Context, id string) (*WeatherRecord, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var record WeatherRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *WeatherSQLRepository) Create(ctx context.Context, record *WeatherRecord) (*WeatherRecord, error) {
	record.ID = ""
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// ReplaceByID is a full-document replace: every weather field is taken from
// the incoming record while id and created_at are preserved.
func (r *WeatherSQLRepository) ReplaceByID(ctx context.Context, id string, record *WeatherRecord) (*WeatherRecord, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *WeatherSQLRepository) DeleteByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&WeatherRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
