package order

import (
	"context"

	"github.com/nagane/franchise-api/internal/application/dto"
	"github.com/nagane/franchise-api/internal/domain"
	"github.com/nagane/franchise-api/internal/domain/entity"
	"github.com/nagane/franchise-api/internal/domain/repository"
	"github.com/nagane/franchise-api/pkg/logger"
)

// UseCase reads the point-of-sale orders of a store.
type UseCase struct {
	stores repository.StoreRepository
	orders repository.OrderRepository
	log    *logger.Logger
}

func NewUseCase(stores repository.StoreRepository, orders repository.OrderRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{stores: stores, orders: orders, log: log.Named("order")}
}

// GetOrderList returns the in-progress orders of the store with their menu lines.
func (uc *UseCase) GetOrderList(ctx context.Context, storeID int64) ([]dto.OrderResponse, error) {
	uc.log.Info().Int64("store_id", storeID).Msg("get order list")

	out, err := uc.getOrderList(ctx, storeID)
	if err != nil {
		uc.log.Error().Err(err).Int64("store_id", storeID).Msg("get order list failed")
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) getOrderList(ctx context.Context, storeID int64) ([]dto.OrderResponse, error) {
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrStoreNotFound
	}
	orders, err := uc.orders.ListByStoreAndState(ctx, store.ID, entity.OrderInProgress)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	lines := make([]dto.OrderMenuResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderMenuResponse{
			MenuNo:   l.MenuID,
			MenuName: l.MenuName,
			Quantity: l.Quantity,
		})
	}
	return dto.OrderResponse{
		OrderNo:       o.ID,
		Amount:        o.Amount,
		OrderDate:     o.OrderDate,
		State:         o.State,
		PaymentMethod: o.PaymentMethod,
		UpdatedDate:   o.UpdatedDate,
		TableNo:       o.TableID,
		OrderMenuList: lines,
	}
}
