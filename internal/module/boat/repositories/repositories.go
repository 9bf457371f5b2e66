package repositories

import (
	"context"
	"database/sql"

	"seaboo-server/internal/module/boat/models/entity"
	"seaboo-server/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type repositories struct {
	db  *sqlx.DB
	log *otelzap.Logger
}

type Repositories interface {
	FindBoats(ctx context.Context) ([]entity.Boat, error)
	FindBoatsByOwnerID(ctx context.Context, ownerID int64) ([]entity.Boat, error)
	FindBoatByID(ctx context.Context, id int64) (entity.Boat, error)
	InsertBoat(ctx context.Context, boat entity.Boat) (entity.Boat, error)
	UpdateBoat(ctx context.Context, boat entity.Boat) error
	DeleteBoat(ctx context.Context, id int64) error
}

func New(db *sqlx.DB, log *otelzap.Logger) Repositories {
	return &repositories{db: db, log: log}
}

// FindBoats implements Repositories.
func (r *repositories) FindBoats(ctx context.Context) ([]entity.Boat, error) {
	query := `SELECT * FROM boats ORDER BY created_at DESC`
	boats := []entity.Boat{}
	if err := r.db.SelectContext(ctx, &boats, query); err != nil {
		return nil, errors.InternalServerError("error find boats")
	}
	return boats, nil
}

// FindBoatsByOwnerID implements Repositories.
func (r *repositories) FindBoatsByOwnerID(ctx context.Context, ownerID int64) ([]entity.Boat, error) {
	query := `SELECT * FROM boats WHERE owner_id = $1 ORDER BY created_at DESC`
	boats := []entity.Boat{}
	if err := r.db.SelectContext(ctx, &boats, query, ownerID); err != nil {
		return nil, errors.InternalServerError("error find boats by owner")
	}
	return boats, nil
}

// FindBoatByID implements Repositories. A missing boat is returned as the
// zero value, not an error.
func (r *repositories) FindBoatByID(ctx context.Context, id int64) (entity.Boat, error) {
	query := `SELECT * FROM boats WHERE id = $1`
	var boat entity.Boat
	err := r.db.GetContext(ctx, &boat, query, id)
	if err == sql.ErrNoRows {
		return entity.Boat{}, nil
	}
	if err != nil {
		return entity.Boat{}, errors.InternalServerError("error find boat by id")
	}
	return boat, nil
}

// InsertBoat implements Repositories.
func (r *repositories) InsertBoat(ctx context.Context, boat entity.Boat) (entity.Boat, error) {
	query := `
		INSERT INTO boats (owner_id, name, type, description, capacity, price_per_day, location, port, length, images, amenities, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		boat.OwnerID, boat.Name, boat.Type, boat.Description, boat.Capacity, boat.PricePerDay,
		boat.Location, boat.Port, boat.Length, boat.Images, boat.Amenities, boat.IsAvailable,
	).Scan(&boat.ID, &boat.CreatedAt)
	if err != nil {
		return entity.Boat{}, errors.InternalServerError("error insert boat")
	}
	return boat, nil
}

// UpdateBoat implements Repositories.
func (r *repositories) UpdateBoat(ctx context.Context, boat entity.Boat) error {
	query := `
		UPDATE boats
		SET name = $2, type = $3, description = $4, capacity = $5, price_per_day = $6,
		    location = $7, port = $8, length = $9, images = $10, amenities = $11,
		    is_available = $12, updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		boat.ID, boat.Name, boat.Type, boat.Description, boat.Capacity, boat.PricePerDay,
		boat.Location, boat.Port, boat.Length, boat.Images, boat.Amenities, boat.IsAvailable,
	)
	if err != nil {
		return errors.InternalServerError("error update boat")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("Barca non trovata")
	}
	return nil
}

// DeleteBoat implements Repositories.
func (r *repositories) DeleteBoat(ctx context.Context, id int64) error {
	query := `DELETE FROM boats WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.InternalServerError("error delete boat")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("Barca non trovata")
	}
	return nil
}
