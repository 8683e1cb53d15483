package collection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elcarbonero/brasa/internal/collection"
	"github.com/elcarbonero/brasa/internal/currency"
	"github.com/elcarbonero/brasa/internal/sale"
)

func TestService_Create_StampsPendingBS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := collection.NewMockRepository(ctrl)
	rates := collection.NewMockRateSource(ctrl)

	rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	repo.EXPECT().
		CreateCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *collection.Collection) error {
			c.ID = uuid.New()
			return nil
		})

	svc := collection.NewService(repo, rates)

	got, err := svc.Create(context.Background(), collection.CreateParams{
		SaleID:     uuid.New(),
		PendingUSD: 250.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got.PendingBS)
	assert.Equal(t, collection.StatusPending, got.Status)
}

func TestService_Create_FallbackRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := collection.NewMockRepository(ctrl)
	rates := collection.NewMockRateSource(ctrl)

	rates.EXPECT().OfficialRate(gomock.Any()).Return(0.0, errors.New("unreachable"))
	repo.EXPECT().
		CreateCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *collection.Collection) error {
			c.ID = uuid.New()
			return nil
		})

	svc := collection.NewService(repo, rates)

	got, err := svc.Create(context.Background(), collection.CreateParams{
		SaleID:     uuid.New(),
		PendingUSD: 10.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0*currency.FallbackOfficialRate, got.PendingBS)
}

func TestService_OpenForSale_UsesSaleRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := collection.NewMockRepository(ctrl)
	rates := collection.NewMockRateSource(ctrl)

	saleID := uuid.New()

	repo.EXPECT().
		CreateCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *collection.Collection) error {
			assert.Equal(t, saleID, c.SaleID)
			assert.Equal(t, 100.0, c.PendingUSD)
			assert.Equal(t, 4000.0, c.PendingBS)
			assert.Equal(t, collection.StatusPending, c.Status)
			return nil
		})

	svc := collection.NewService(repo, rates)

	err := svc.OpenForSale(context.Background(), &sale.Sale{
		ID:          saleID,
		TotalUSD:    100.0,
		TotalBS:     4000.0,
		RateApplied: 40.0,
		Status:      sale.StatusCompleted,
	})
	assert.NoError(t, err)
}
