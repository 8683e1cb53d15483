package sale_test

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
	"github.com/elcarbonero/brasa/internal/sale"
)

type mocks struct {
	repo        *sale.MockRepository
	inventory   *sale.MockInventory
	rates       *sale.MockRateSource
	collections *sale.MockCollections
	auditor     *sale.MockAuditor
}

func newTestService(ctrl *gomock.Controller) (*sale.Service, *mocks) {
	m := &mocks{
		repo:        sale.NewMockRepository(ctrl),
		inventory:   sale.NewMockInventory(ctrl),
		rates:       sale.NewMockRateSource(ctrl),
		collections: sale.NewMockCollections(ctrl),
		auditor:     sale.NewMockAuditor(ctrl),
	}

	m.auditor.EXPECT().Action(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.auditor.EXPECT().Failure(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	svc := sale.NewService(m.repo, m.inventory, m.rates, m.collections, m.auditor)

	return svc, m
}

// expectCreateSale assigns an id to the inserted header, like the store does.
func expectCreateSale(m *mocks, id uuid.UUID) {
	m.repo.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *sale.Sale) error {
			v.ID = id
			v.CustomerName = "Distribuidora Norte"
			return nil
		})
}

func TestService_Create_StampsTotalsAndDecrementsStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productC := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().CreateItems(gomock.Any(), saleID, gomock.Any()).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), productC, 20).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productC, Quantity: 20, UnitPriceUSD: 5.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, saleID, got.ID)
	assert.Equal(t, 100.0, got.TotalUSD)
	assert.Equal(t, 4000.0, got.TotalBS)
	assert.Equal(t, 40.0, got.RateApplied)
	assert.Equal(t, got.TotalUSD*got.RateApplied, got.TotalBS)
	assert.Equal(t, sale.StatusPending, got.Status)
}

func TestService_Create_ItemBolivarFiguresUseAppliedRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()

	var inserted []*sale.Item

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(36.5, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().
		CreateItems(gomock.Any(), saleID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, items []*sale.Item) error {
			inserted = items
			return nil
		})
	m.inventory.EXPECT().DecrementStock(gomock.Any(), productA, 3).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 3, UnitPriceUSD: 2.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	it := inserted[0]
	assert.Equal(t, 6.0, it.SubtotalUSD)
	assert.Equal(t, it.SubtotalUSD*got.RateApplied, it.SubtotalBS)
	assert.Equal(t, it.UnitPriceUSD*got.RateApplied, it.UnitPriceBS)
}

func TestService_Create_FallbackRateWhenSourceUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(0.0, errors.New("connection refused"))
	expectCreateSale(m, saleID)
	m.repo.EXPECT().CreateItems(gomock.Any(), saleID, gomock.Any()).Return(nil)
	m.inventory.EXPECT().DecrementStock(gomock.Any(), productA, 2).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 2, UnitPriceUSD: 10.0},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, currency.FallbackOfficialRate, got.RateApplied)
	assert.Equal(t, 20.0*currency.FallbackOfficialRate, got.TotalBS)
}

func TestService_Create_ItemInsertFailureDeletesHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().
		CreateItems(gomock.Any(), saleID, gomock.Any()).
		Return(errors.New("insert failed"))
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 1, UnitPriceUSD: 5.0},
		},
	})
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestService_Create_InsufficientStockRollsBackEverything(t *testing.T) {
	// Scenario: Product A (stock 10, qty 3), Product B (stock 1, qty 5).
	// B's decrement fails, A's must be restored, all rows deleted.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().CreateItems(gomock.Any(), saleID, gomock.Any()).Return(nil)

	m.inventory.EXPECT().DecrementStock(gomock.Any(), productA, 3).Return(nil)
	m.inventory.EXPECT().
		DecrementStock(gomock.Any(), productB, 5).
		Return(&product.InsufficientStockError{ProductID: productB})

	m.inventory.EXPECT().IncrementStock(gomock.Any(), productA, 3).Return(nil)
	m.repo.EXPECT().DeleteItems(gomock.Any(), saleID).Return(nil)
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 3, UnitPriceUSD: 2.0},
			{ProductID: &productB, Quantity: 5, UnitPriceUSD: 1.0},
		},
	})
	assert.Nil(t, got)
	require.Error(t, err)

	var insufficientErr *product.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, productB, insufficientErr.ProductID)
}

func TestService_Create_StockWriteFailureRollsBackEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().CreateItems(gomock.Any(), saleID, gomock.Any()).Return(nil)
	m.inventory.EXPECT().
		DecrementStock(gomock.Any(), productA, 4).
		Return(errors.New("update failed"))

	m.repo.EXPECT().DeleteItems(gomock.Any(), saleID).Return(nil)
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(nil)

	got, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 4, UnitPriceUSD: 1.0},
		},
	})
	assert.Nil(t, got)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "update failed")
}

func TestService_Create_RollbackFailureDoesNotMaskPrimaryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productA := uuid.New()

	m.rates.EXPECT().OfficialRate(gomock.Any()).Return(40.0, nil)
	expectCreateSale(m, saleID)
	m.repo.EXPECT().
		CreateItems(gomock.Any(), saleID, gomock.Any()).
		Return(errors.New("primary failure"))
	m.repo.EXPECT().
		DeleteSale(gomock.Any(), saleID).
		Return(errors.New("rollback also failed"))

	_, err := svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 1, UnitPriceUSD: 5.0},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary failure")
	assert.NotContains(t, err.Error(), "rollback also failed")
}

func TestService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(ctrl)

	_, err := svc.Create(context.Background(), sale.CreateParams{})
	assert.ErrorIs(t, err, sale.ErrNoItems)

	productA := uuid.New()
	_, err = svc.Create(context.Background(), sale.CreateParams{
		Items: []sale.ItemParams{
			{ProductID: &productA, Quantity: 0, UnitPriceUSD: 1.0},
		},
	})
	assert.ErrorIs(t, err, sale.ErrBadQty)
}

func TestService_Delete_RestoresStockThenRemovesRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productC := uuid.New()

	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return([]*sale.Item{
		{ID: uuid.New(), SaleID: saleID, ProductID: &productC, Quantity: 20},
	}, nil)
	m.inventory.EXPECT().IncrementStock(gomock.Any(), productC, 20).Return(nil)
	m.repo.EXPECT().DeleteItems(gomock.Any(), saleID).Return(nil)
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(nil)

	err := svc.Delete(context.Background(), saleID)
	assert.NoError(t, err)
}

func TestService_Delete_RestoreFailureLeavesSaleIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	productC := uuid.New()

	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return([]*sale.Item{
		{ID: uuid.New(), SaleID: saleID, ProductID: &productC, Quantity: 5},
	}, nil)
	m.inventory.EXPECT().
		IncrementStock(gomock.Any(), productC, 5).
		Return(errors.New("update failed"))

	// No DeleteItems and no DeleteSale expected: the deletion must abort.
	err := svc.Delete(context.Background(), saleID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), productC.String())
}

func TestService_Delete_ListFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()

	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return(nil, errors.New("db down"))

	err := svc.Delete(context.Background(), saleID)
	assert.Error(t, err)
}

func TestService_Delete_SkipsItemsWithoutProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()

	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return([]*sale.Item{
		{ID: uuid.New(), SaleID: saleID, Quantity: 2},
	}, nil)
	m.repo.EXPECT().DeleteItems(gomock.Any(), saleID).Return(nil)
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(nil)

	err := svc.Delete(context.Background(), saleID)
	assert.NoError(t, err)
}

func TestService_Delete_UnknownSaleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()

	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return(nil, nil)
	m.repo.EXPECT().DeleteItems(gomock.Any(), saleID).Return(nil)
	m.repo.EXPECT().DeleteSale(gomock.Any(), saleID).Return(sale.ErrNotFound)

	err := svc.Delete(context.Background(), saleID)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestService_UpdateStatus_CompletionOpensCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	header := &sale.Sale{ID: saleID, TotalUSD: 100, TotalBS: 4000, RateApplied: 40, Status: sale.StatusPending}

	m.repo.EXPECT().GetSale(gomock.Any(), saleID).Return(header, nil)
	m.repo.EXPECT().UpdateStatus(gomock.Any(), saleID, sale.StatusCompleted).Return(nil)
	m.collections.EXPECT().
		OpenForSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *sale.Sale) error {
			assert.Equal(t, saleID, v.ID)
			assert.Equal(t, sale.StatusCompleted, v.Status)
			return nil
		})

	err := svc.UpdateStatus(context.Background(), saleID, sale.StatusCompleted)
	assert.NoError(t, err)
}

func TestService_UpdateStatus_ReceivableFailureIsAudited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sale.NewMockRepository(ctrl)
	inventory := sale.NewMockInventory(ctrl)
	rates := sale.NewMockRateSource(ctrl)
	collections := sale.NewMockCollections(ctrl)
	auditor := sale.NewMockAuditor(ctrl)

	svc := sale.NewService(repo, inventory, rates, collections, auditor)

	saleID := uuid.New()
	header := &sale.Sale{ID: saleID, TotalUSD: 50, RateApplied: 40, Status: sale.StatusPending}

	repo.EXPECT().GetSale(gomock.Any(), saleID).Return(header, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), saleID, sale.StatusCompleted).Return(nil)
	collections.EXPECT().
		OpenForSale(gomock.Any(), gomock.Any()).
		Return(errors.New("insert failed"))
	auditor.EXPECT().
		Failure(gomock.Any(), "ventas", "UPDATE", gomock.Any()).
		Do(func(_ context.Context, _, _, message string) {
			assert.Contains(t, message, saleID.String())
			assert.Contains(t, message, "without receivable")
		})

	err := svc.UpdateStatus(context.Background(), saleID, sale.StatusCompleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestService_UpdateStatus_NonCompletionSkipsCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	header := &sale.Sale{ID: saleID, Status: sale.StatusPending}

	m.repo.EXPECT().GetSale(gomock.Any(), saleID).Return(header, nil)
	m.repo.EXPECT().UpdateStatus(gomock.Any(), saleID, sale.StatusShipped).Return(nil)

	err := svc.UpdateStatus(context.Background(), saleID, sale.StatusShipped)
	assert.NoError(t, err)
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()
	header := &sale.Sale{ID: saleID, CustomerName: "Asadero El Paisa"}

	m.repo.EXPECT().GetSale(gomock.Any(), saleID).Return(header, nil)
	m.repo.EXPECT().ListItems(gomock.Any(), saleID).Return([]*sale.Item{
		{ID: uuid.New(), SaleID: saleID, Quantity: 1},
	}, nil)

	got, items, err := svc.Get(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, header, got)
	assert.Len(t, items, 1)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	saleID := uuid.New()

	m.repo.EXPECT().GetSale(gomock.Any(), saleID).Return(nil, sale.ErrNotFound)

	_, _, err := svc.Get(context.Background(), saleID)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}
