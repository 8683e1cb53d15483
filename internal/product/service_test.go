package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/elcarbonero/brasa/internal/currency"
	"github.com/elcarbonero/brasa/internal/product"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     product.CreateParams
		setupMocks func(repo *product.MockRepository, rates *product.MockRateSource)
		wantBS     float64
		wantErr    bool
	}

	tests := []testCase{
		{
			name:   "StampsBolivarPrice",
			params: product.CreateParams{Name: "Carbón Vegetal Premium", PriceUSD: 2.5, Stock: 100},
			setupMocks: func(repo *product.MockRepository, rates *product.MockRateSource) {
				rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
				repo.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *product.Product) error {
						p.ID = uuid.New()
						return nil
					})
			},
			wantBS: 100.0,
		},
		{
			name:   "FallbackRateWhenSourceDown",
			params: product.CreateParams{Name: "Briquetas", PriceUSD: 3.0, Stock: 50},
			setupMocks: func(repo *product.MockRepository, rates *product.MockRateSource) {
				rates.EXPECT().OfficialRate(gomock.Any()).Return(0.0, errors.New("timeout"))
				repo.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *product.Product) error {
						p.ID = uuid.New()
						return nil
					})
			},
			wantBS: 3.0 * currency.FallbackOfficialRate,
		},
		{
			name:   "RepoError",
			params: product.CreateParams{Name: "Carbón Mineral", PriceUSD: 1.0},
			setupMocks: func(repo *product.MockRepository, rates *product.MockRateSource) {
				rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
				repo.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			rates := product.NewMockRateSource(ctrl)
			tt.setupMocks(repo, rates)

			svc := product.NewService(repo, rates)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBS, got.PriceBS)
		})
	}
}

func TestService_Update_PriceChangeRestampsBS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &product.Product{ID: id, Name: "Carbón Vegetal", PriceUSD: 2.0, PriceBS: 80.0, Stock: 10}

	repo := product.NewMockRepository(ctrl)
	rates := product.NewMockRateSource(ctrl)

	repo.EXPECT().GetProduct(gomock.Any(), id).Return(existing, nil)
	rates.EXPECT().OfficialRate(gomock.Any()).Return(45.0, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).Return(nil)

	svc := product.NewService(repo, rates)

	newPrice := 3.0
	got, err := svc.Update(context.Background(), id, product.UpdateParams{PriceUSD: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.PriceUSD)
	assert.Equal(t, 135.0, got.PriceBS)
}

func TestService_Update_NoPriceChangeKeepsBS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &product.Product{ID: id, Name: "Carbón Vegetal", PriceUSD: 2.0, PriceBS: 80.0, Stock: 10}

	repo := product.NewMockRepository(ctrl)
	rates := product.NewMockRateSource(ctrl)

	repo.EXPECT().GetProduct(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).Return(nil)

	svc := product.NewService(repo, rates)

	newStock := 25
	got, err := svc.Update(context.Background(), id, product.UpdateParams{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 25, got.Stock)
	assert.Equal(t, 80.0, got.PriceBS)
}

func TestInsufficientStockError(t *testing.T) {
	id := uuid.New()
	err := &product.InsufficientStockError{ProductID: id}
	assert.Contains(t, err.Error(), id.String())
}
