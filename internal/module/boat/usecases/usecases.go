package usecases

import (
	"context"
	"database/sql"

	"seaboo-server/internal/module/boat/models/entity"
	"seaboo-server/internal/module/boat/models/request"
	"seaboo-server/internal/module/boat/models/response"
	"seaboo-server/internal/module/boat/repositories"
	"seaboo-server/internal/pkg/errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type usecase struct {
	repo repositories.Repositories
	log  *otelzap.Logger
}

type Usecase interface {
	ListBoats(ctx context.Context) ([]response.Boat, error)
	ListOwnerBoats(ctx context.Context, ownerID int64) ([]response.Boat, error)
	CreateBoat(ctx context.Context, payload *request.CreateBoat, ownerID int64, imagePaths []string) (response.Boat, error)
	UpdateBoat(ctx context.Context, boatID int64, payload *request.UpdateBoat, ownerID int64, imagePaths []string) (response.Boat, error)
	DeleteBoat(ctx context.Context, boatID, ownerID int64) error
}

func New(repo repositories.Repositories, log *otelzap.Logger) Usecase {
	return &usecase{repo: repo, log: log}
}

func (u *usecase) ListBoats(ctx context.Context) ([]response.Boat, error) {
	boats, err := u.repo.FindBoats(ctx)
	if err != nil {
		return nil, err
	}
	return toBoatResponses(boats), nil
}

func (u *usecase) ListOwnerBoats(ctx context.Context, ownerID int64) ([]response.Boat, error) {
	boats, err := u.repo.FindBoatsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toBoatResponses(boats), nil
}

func (u *usecase) CreateBoat(ctx context.Context, payload *request.CreateBoat, ownerID int64, imagePaths []string) (response.Boat, error) {
	boat := entity.Boat{
		OwnerID:     ownerID,
		Name:        payload.Name,
		Type:        payload.Type,
		Description: payload.Description,
		Capacity:    payload.Capacity,
		PricePerDay: payload.PricePerDay,
		Location:    payload.Location,
		Port:        sql.NullString{String: payload.Port, Valid: payload.Port != ""},
		Length:      sql.NullFloat64{Float64: payload.Length, Valid: payload.Length > 0},
		Images:      imagePaths,
		Amenities:   payload.Amenities,
		IsAvailable: true,
	}

	boat, err := u.repo.InsertBoat(ctx, boat)
	if err != nil {
		return response.Boat{}, err
	}
	return toBoatResponse(boat), nil
}

func (u *usecase) UpdateBoat(ctx context.Context, boatID int64, payload *request.UpdateBoat, ownerID int64, imagePaths []string) (response.Boat, error) {
	boat, err := u.ownedBoat(ctx, boatID, ownerID)
	if err != nil {
		return response.Boat{}, err
	}

	if payload.Name != "" {
		boat.Name = payload.Name
	}
	if payload.Type != "" {
		boat.Type = payload.Type
	}
	if payload.Description != "" {
		boat.Description = payload.Description
	}
	if payload.Capacity > 0 {
		boat.Capacity = payload.Capacity
	}
	if payload.PricePerDay > 0 {
		boat.PricePerDay = payload.PricePerDay
	}
	if payload.Location != "" {
		boat.Location = payload.Location
	}
	if payload.Port != "" {
		boat.Port = sql.NullString{String: payload.Port, Valid: true}
	}
	if payload.Length > 0 {
		boat.Length = sql.NullFloat64{Float64: payload.Length, Valid: true}
	}
	if len(payload.Amenities) > 0 {
		boat.Amenities = payload.Amenities
	}
	if len(imagePaths) > 0 {
		boat.Images = imagePaths
	}
	if payload.IsAvailable != nil {
		boat.IsAvailable = *payload.IsAvailable
	}

	if err := u.repo.UpdateBoat(ctx, boat); err != nil {
		return response.Boat{}, err
	}
	return toBoatResponse(boat), nil
}

func (u *usecase) DeleteBoat(ctx context.Context, boatID, ownerID int64) error {
	if _, err := u.ownedBoat(ctx, boatID, ownerID); err != nil {
		return err
	}
	return u.repo.DeleteBoat(ctx, boatID)
}

// ownedBoat loads a boat and hides its existence from non-owners: the caller
// gets the same not-found either way.
func (u *usecase) ownedBoat(ctx context.Context, boatID, ownerID int64) (entity.Boat, error) {
	boat, err := u.repo.FindBoatByID(ctx, boatID)
	if err != nil {
		return entity.Boat{}, err
	}
	if boat.ID == 0 || boat.OwnerID != ownerID {
		return entity.Boat{}, errors.NotFound("Barca non trovata")
	}
	return boat, nil
}

func toBoatResponses(boats []entity.Boat) []response.Boat {
	resp := make([]response.Boat, 0, len(boats))
	for _, boat := range boats {
		resp = append(resp, toBoatResponse(boat))
	}
	return resp
}

func toBoatResponse(boat entity.Boat) response.Boat {
	return response.Boat{
		ID:          boat.ID,
		OwnerID:     boat.OwnerID,
		Name:        boat.Name,
		Type:        boat.Type,
		Description: boat.Description,
		Capacity:    boat.Capacity,
		PricePerDay: boat.PricePerDay,
		Location:    boat.Location,
		Port:        boat.Port.String,
		Length:      boat.Length.Float64,
		Images:      boat.Images,
		Amenities:   boat.Amenities,
		IsAvailable: boat.IsAvailable,
	}
}
