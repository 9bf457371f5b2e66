package usecases_test

import (
	"context"
	"testing"

	"seaboo-server/internal/module/boat/mocks"
	"seaboo-server/internal/module/boat/models/entity"
	"seaboo-server/internal/module/boat/models/request"
	"seaboo-server/internal/module/boat/usecases"
	log_internal "seaboo-server/internal/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
)

func setup() {
	repoMock = new(mocks.Repositories)
	logMock := log_internal.Setup()
	uc = usecases.New(repoMock, logMock)
}

func teardown() {
	repoMock = nil
	uc = nil
}

func TestCreateBoat(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	payload := request.CreateBoat{
		Name:        "Blue Marlin",
		Type:        "gommone",
		Description: "Gommone 7 posti",
		Capacity:    7,
		PricePerDay: 150,
		Location:    "Napoli",
	}
	imagePaths := []string{"/uploads/abc.jpg"}

	repoMock.On("InsertBoat", ctx, mock.AnythingOfType("entity.Boat")).
		Return(entity.Boat{ID: 5, OwnerID: 2, Name: payload.Name, IsAvailable: true, Images: imagePaths}, nil)

	resp, err := uc.CreateBoat(ctx, &payload, 2, imagePaths)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.True(t, resp.IsAvailable)
}

func TestUpdateBoat(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repoMock.On("FindBoatByID", ctx, int64(5)).
			Return(entity.Boat{ID: 5, OwnerID: 2, Name: "Blue Marlin", PricePerDay: 150}, nil)
		repoMock.On("UpdateBoat", ctx, mock.AnythingOfType("entity.Boat")).Return(nil)

		resp, err := uc.UpdateBoat(ctx, 5, &request.UpdateBoat{PricePerDay: 180}, 2, nil)

		assert.NoError(t, err)
		assert.Equal(t, float64(180), resp.PricePerDay)
	})

	t.Run("not the owner", func(t *testing.T) {
		setup()
		repoMock.On("FindBoatByID", ctx, int64(5)).
			Return(entity.Boat{ID: 5, OwnerID: 2}, nil)

		_, err := uc.UpdateBoat(ctx, 5, &request.UpdateBoat{PricePerDay: 180}, 9, nil)

		assert.EqualError(t, err, "Barca non trovata")
		repoMock.AssertNotCalled(t, "UpdateBoat")
	})
}

func TestDeleteBoat(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repoMock.On("FindBoatByID", ctx, int64(5)).
			Return(entity.Boat{ID: 5, OwnerID: 2}, nil)
		repoMock.On("DeleteBoat", ctx, int64(5)).Return(nil)

		err := uc.DeleteBoat(ctx, 5, 2)

		assert.NoError(t, err)
	})

	t.Run("unknown boat", func(t *testing.T) {
		setup()
		repoMock.On("FindBoatByID", ctx, int64(99)).Return(entity.Boat{}, nil)

		err := uc.DeleteBoat(ctx, 99, 2)

		assert.EqualError(t, err, "Barca non trovata")
		repoMock.AssertNotCalled(t, "DeleteBoat")
	})
}
