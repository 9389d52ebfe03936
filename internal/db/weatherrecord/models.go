package weatherrecord

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coordinates is embedded into WeatherRecord so the JSON shape keeps the
// nested {lon,lat} object while the table stays flat.
type Coordinates struct {
	Lon float64 `json:"lon" gorm:"column:coord_lon"`
	Lat float64 `json:"lat" gorm:"column:coord_lat"`
}

// WeatherRecord is the canonical persisted weather document. Every record is
// validated against this shape before it is written.
type WeatherRecord struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid"`
	City        string      `json:"city" gorm:"index:idx_city" validate:"required"`
	Country     string      `json:"country" validate:"required,min=2"`
	Coordinates Coordinates `json:"coordinates" gorm:"embedded"`
	Temp        float64     `json:"temp"`
	FeelsLike   float64     `json:"feelsLike"`
	WindSpeed   float64     `json:"windSpeed"`
	Humidity    int         `json:"humidity"`
	Pressure    int         `json:"pressure"`
	Condition   string      `json:"condition" validate:"required"`
	Description string      `json:"description" validate:"required"`
	FetchedAt   time.Time   `json:"fetchedAt" gorm:"index:idx_fetched_at" validate:"required"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (WeatherRecord) TableName() string {
	return "weather_records"
}

// BeforeCreate assigns the store-owned identifier.
func (r *WeatherRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
