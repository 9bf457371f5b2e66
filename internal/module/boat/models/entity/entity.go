package entity

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Boat struct {
	ID          int64           `db:"id"`
	OwnerID     int64           `db:"owner_id"`
	Name        string          `db:"name"`
	Type        string          `db:"type"`
	Description string          `db:"description"`
	Capacity    int             `db:"capacity"`
	PricePerDay float64         `db:"price_per_day"`
	Location    string          `db:"location"`
	Port        sql.NullString  `db:"port"`
	Length      sql.NullFloat64 `db:"length"`
	Images      pq.StringArray  `db:"images"`
	Amenities   pq.StringArray  `db:"amenities"`
	IsAvailable bool            `db:"is_available"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   sql.NullTime    `db:"updated_at"`
}
