package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagane/franchise-api/internal/application/order"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/infrastructure/memory"
)

func TestGetOrderList(t *testing.T) {
	db := memory.NewDB()
	storeID := db.SeedStore(entity.Store{Code: "S001", Name: "Shibuya"})
	other := db.SeedStore(entity.Store{Code: "S002", Name: "Ueno"})
	menuID := db.SeedMenu(entity.Menu{Code: "M1", Name: "Ramen"})
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	db.SeedOrder(entity.Order{
		StoreID: storeID, TableID: 4, Amount: decimal.NewFromInt(1600), OrderDate: at,
		State: entity.OrderInProgress, PaymentMethod: "cash", UpdatedDate: at,
		Lines: []entity.OrderLine{{MenuID: menuID, Quantity: 2}},
	})
	db.SeedOrder(entity.Order{StoreID: storeID, TableID: 5, OrderDate: at, State: 1})
	db.SeedOrder(entity.Order{StoreID: other, TableID: 1, OrderDate: at, State: entity.OrderInProgress})

	uc := order.NewUseCase(memory.NewStoreRepository(db), memory.NewOrderRepository(db), nil)

	list, err := uc.GetOrderList(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, int64(4), got.TableNo)
	assert.Equal(t, "cash", got.PaymentMethod)
	assert.True(t, decimal.NewFromInt(1600).Equal(got.Amount))
	require.Len(t, got.OrderMenuList, 1)
	assert.Equal(t, "Ramen", got.OrderMenuList[0].MenuName)
	assert.Equal(t, 2, got.OrderMenuList[0].Quantity)
}

func TestGetOrderList_StoreNotFound(t *testing.T) {
	db := memory.NewDB()
	uc := order.NewUseCase(memory.NewStoreRepository(db), memory.NewOrderRepository(db), nil)

	_, err := uc.GetOrderList(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}
