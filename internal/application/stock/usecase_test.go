package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/application/stock"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/infrastructure/memory"
)

type recordingPublisher struct {
	events []entity.PurchaseOrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev entity.PurchaseOrderEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type fakeSheet struct {
	items []dto.PurchaseOrderListItem
}

func (f *fakeSheet) RenderPurchaseOrderSheet(_ context.Context, items []dto.PurchaseOrderListItem, _ time.Time) ([]byte, error) {
	f.items = items
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	db     *memory.DB
	uc     *stock.UseCase
	events *recordingPublisher
	sheet  *fakeSheet
	store  int64
	menu   int64
}

func newFixture(t *testing.T, join stock.JoinMode) *fixture {
	t.Helper()
	db := memory.NewDB()
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	db.Clock = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	storeID := db.SeedStore(entity.Store{Code: "S001", Name: "Shibuya"})
	menuID := db.SeedMenu(entity.Menu{CategoryID: 1, Code: "M001", Name: "Ramen", Price: decimal.NewFromInt(800)})

	events := &recordingPublisher{}
	sheet := &fakeSheet{}
	uc := stock.NewUseCase(db.StockRepos(), memory.NewTxRunner(db), events, sheet, join, nil)
	return &fixture{db: db, uc: uc, events: events, sheet: sheet, store: storeID, menu: menuID}
}

func intPtr(v int) *int { return &v }

func TestCreateStock(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()

	id, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	list, err := f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Quantity)
	assert.Nil(t, list[0].LastStockDate)
	assert.Equal(t, "Ramen", list[0].MenuName)
	assert.Nil(t, list[0].POState)
}

func TestCreateStock_NotFound(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()

	_, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: 99, MenuID: f.menu})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	_, err = f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: 99})
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)

	list, err := f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	assert.Empty(t, list)

	// nothing was written, so the next id is still 1
	id, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestUpdateStock_PartialFields(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	id, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)

	_, err = f.uc.UpdateStock(ctx, dto.UpdateStockRequest{StockID: id, Quantity: intPtr(5)})
	require.NoError(t, err)

	date := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	_, err = f.uc.UpdateStock(ctx, dto.UpdateStockRequest{StockID: id, LastStockDate: &date})
	require.NoError(t, err)

	list, err := f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Quantity)
	assert.Equal(t, 5, *list[0].Quantity)
	require.NotNil(t, list[0].LastStockDate)
	assert.True(t, date.Equal(*list[0].LastStockDate))

	_, err = f.uc.UpdateStock(ctx, dto.UpdateStockRequest{StockID: id, Quantity: intPtr(7)})
	require.NoError(t, err)

	list, err = f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	require.NotNil(t, list[0].Quantity)
	assert.Equal(t, 7, *list[0].Quantity)
	require.NotNil(t, list[0].LastStockDate, "quantity-only update keeps the date")
	assert.True(t, date.Equal(*list[0].LastStockDate))

	got, err := f.uc.UpdateStock(ctx, dto.UpdateStockRequest{StockID: id})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	list, err = f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	assert.Equal(t, 7, *list[0].Quantity)
	require.NotNil(t, list[0].LastStockDate)
	assert.True(t, date.Equal(*list[0].LastStockDate))
}

func TestStoreOwnership(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	poID, err := f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: stockID, Quantity: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	storeID, ok, err := f.uc.StoreOfStock(ctx, stockID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, f.store, storeID)

	storeID, ok, err = f.uc.StoreOfPurchaseOrder(ctx, poID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, f.store, storeID)

	_, ok, err = f.uc.StoreOfStock(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = f.uc.StoreOfPurchaseOrder(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateStock_NotFound(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)

	_, err := f.uc.UpdateStock(context.Background(), dto.UpdateStockRequest{StockID: 42, Quantity: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestGetStockList_EmptyStore(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	other := f.db.SeedStore(entity.Store{Code: "S002", Name: "Ueno"})

	list, err := f.uc.GetStockList(context.Background(), other)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteStock(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()

	ok, err := f.uc.DeleteStock(ctx, 12345)
	require.NoError(t, err)
	assert.True(t, ok)

	id, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	ok, err = f.uc.DeleteStock(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteStock_WithPurchaseOrders(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	id, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	_, err = f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: id, Quantity: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	ok, err := f.uc.DeleteStock(ctx, id)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, ok)
}

func TestCreatePurchaseOrder_StockNotFound(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)

	_, err := f.uc.CreatePurchaseOrder(context.Background(), dto.CreatePurchaseOrderRequest{StockID: 7, Quantity: 1, Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
	assert.Empty(t, f.events.events)
}

func TestUpdatePurchaseOrder(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	poID, err := f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: stockID, Quantity: 3, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	t.Run("same state twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			got, err := f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: poID, State: intPtr(1)})
			require.NoError(t, err)
			assert.Equal(t, poID, got)
		}
	})

	t.Run("back to open", func(t *testing.T) {
		_, err := f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: poID, State: intPtr(0)})
		require.NoError(t, err)
		list, err := f.uc.GetPurchaseOrderList(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("missing state", func(t *testing.T) {
		_, err := f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: poID})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: 999, State: intPtr(1)})
		assert.ErrorIs(t, err, domain.ErrPurchaseOrderNotFound)
	})
}

func TestGetPurchaseOrderList_OnlyOpen(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: stockID, Quantity: i + 1, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err = f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: ids[1], State: intPtr(2)})
	require.NoError(t, err)

	list, err := f.uc.GetPurchaseOrderList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].PurchaseOrderID)
	assert.Equal(t, ids[2], list[1].PurchaseOrderID)
}

func TestDeletePurchaseOrder(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)

	ok, err := f.uc.DeletePurchaseOrder(context.Background(), 404)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPurchaseOrderScenario(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()

	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stockID)

	poID, err := f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{
		StockID:  stockID,
		Quantity: 10,
		Price:    decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), poID)

	list, err := f.uc.GetPurchaseOrderList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "S001", list[0].StoreCode)
	assert.Equal(t, "M001", list[0].MenuCode)
	assert.Equal(t, 10, list[0].Quantity)
	assert.True(t, decimal.RequireFromString("5.00").Equal(list[0].Price))
	assert.False(t, list[0].OrderDate.IsZero())

	stocks, err := f.uc.GetStockList(ctx, f.store)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	require.NotNil(t, stocks[0].POState)
	assert.Equal(t, 0, *stocks[0].POState)
	assert.Equal(t, 10, *stocks[0].POQuantity)

	_, err = f.uc.UpdatePurchaseOrder(ctx, dto.UpdatePurchaseOrderRequest{OrderID: poID, State: intPtr(1)})
	require.NoError(t, err)

	list, err = f.uc.GetPurchaseOrderList(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, f.events.events, 2)
	assert.Equal(t, entity.PurchaseOrderCreated, f.events.events[0].Type)
	assert.Equal(t, entity.PurchaseOrderStateChanged, f.events.events[1].Type)
	assert.Equal(t, 1, f.events.events[1].State)
}

func TestGetStockList_JoinModes(t *testing.T) {
	ctx := context.Background()
	seed := func(t *testing.T, f *fixture) (int64, int64) {
		second := f.db.SeedMenu(entity.Menu{CategoryID: 1, Code: "M002", Name: "Gyoza"})
		a, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
		require.NoError(t, err)
		b, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: second})
		require.NoError(t, err)
		_, err = f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: a, Quantity: 4, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		_, err = f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: a, Quantity: 6, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		return a, b
	}

	t.Run("per stock", func(t *testing.T) {
		f := newFixture(t, stock.JoinPerStock)
		a, b := seed(t, f)

		list, err := f.uc.GetStockList(ctx, f.store)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, a, list[0].StockID)
		require.NotNil(t, list[0].POQuantity)
		assert.Equal(t, 6, *list[0].POQuantity)
		assert.Equal(t, b, list[1].StockID)
		assert.Nil(t, list[1].POQuantity)
	})

	t.Run("legacy", func(t *testing.T) {
		f := newFixture(t, stock.JoinLegacy)
		seed(t, f)

		// store id 1 is looked up as stock id 1, whose latest order is applied to every row
		list, err := f.uc.GetStockList(ctx, f.store)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, item := range list {
			require.NotNil(t, item.POQuantity)
			assert.Equal(t, 6, *item.POQuantity)
		}
	})
}

func TestPublishFailureIsNotReturned(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	f.events.err = errors.New("broker down")
	ctx := context.Background()

	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	id, err := f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: stockID, Quantity: 1, Price: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Len(t, f.events.events, 1)
}

func TestPurchaseOrderSheet(t *testing.T) {
	f := newFixture(t, stock.JoinPerStock)
	ctx := context.Background()
	stockID, err := f.uc.CreateStock(ctx, dto.CreateStockRequest{StoreID: f.store, MenuID: f.menu})
	require.NoError(t, err)
	_, err = f.uc.CreatePurchaseOrder(ctx, dto.CreatePurchaseOrderRequest{StockID: stockID, Quantity: 2, Price: decimal.NewFromInt(3)})
	require.NoError(t, err)

	doc, err := f.uc.PurchaseOrderSheet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	require.Len(t, f.sheet.items, 1)
	assert.Equal(t, "M001", f.sheet.items[0].MenuCode)
}
