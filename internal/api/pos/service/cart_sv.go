package posService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/entity"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"EnergyPalace/pkg/kv"

	"github.com/sirupsen/logrus"
)

func (s *posService) GetCarts(ctx context.Context) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	return s.snapshot(), nil
}

func (s *posService) AddOrder(ctx context.Context) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	s.carts.Orders = append(s.carts.Orders, entity.Order{PaymentMode: defaultPayMode})
	s.carts.Active = len(s.carts.Orders) - 1

	return s.snapshot(), s.persistCarts(ctx)
}

func (s *posService) RemoveOrder(ctx context.Context, index int) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	if index < 0 || index >= len(s.carts.Orders) {
		return pos.CartState{}, pos.ErrOrderNotFound
	}
	if len(s.carts.Orders) == 1 {
		return pos.CartState{}, pos.ErrLastOrder
	}

	s.carts.Orders = append(s.carts.Orders[:index], s.carts.Orders[index+1:]...)
	if s.carts.Active >= len(s.carts.Orders) {
		s.carts.Active = len(s.carts.Orders) - 1
	}

	return s.snapshot(), s.persistCarts(ctx)
}

func (s *posService) SwitchOrder(ctx context.Context, index int) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	if index < 0 || index >= len(s.carts.Orders) {
		return pos.CartState{}, pos.ErrOrderNotFound
	}

	s.carts.Active = index
	return s.snapshot(), s.persistCarts(ctx)
}

func (s *posService) AddToCart(ctx context.Context, name string, qty int) (pos.CartState, error) {
	if qty < 1 {
		qty = 1
	}

	product, found, err := s.FindProduct(ctx, name)
	if err != nil {
		return pos.CartState{}, err
	}
	if !found {
		return pos.CartState{}, pos.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	order := &s.carts.Orders[s.carts.Active]
	for i := range order.Items {
		if strings.EqualFold(order.Items[i].Name, product.Name) {
			order.Items[i].Qty += qty
			return s.snapshot(), s.persistCarts(ctx)
		}
	}

	order.Items = append(order.Items, entity.CartItem{
		Name: product.Name,
		Qty:  qty,
		Rate: product.Rate,
	})

	return s.snapshot(), s.persistCarts(ctx)
}

func (s *posService) RemoveFromCart(ctx context.Context, name string) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	order := &s.carts.Orders[s.carts.Active]
	for i := range order.Items {
		if strings.EqualFold(order.Items[i].Name, name) {
			order.Items = append(order.Items[:i], order.Items[i+1:]...)
			return s.snapshot(), s.persistCarts(ctx)
		}
	}

	return pos.CartState{}, pos.ErrItemNotInCart
}

func (s *posService) UpdateQuantity(ctx context.Context, name string, qty int) (pos.CartState, error) {
	if qty < 1 {
		return pos.CartState{}, pos.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	order := &s.carts.Orders[s.carts.Active]
	for i := range order.Items {
		if strings.EqualFold(order.Items[i].Name, name) {
			order.Items[i].Qty = qty
			return s.snapshot(), s.persistCarts(ctx)
		}
	}

	return pos.CartState{}, pos.ErrItemNotInCart
}

func (s *posService) SetPayMode(ctx context.Context, mode string) (pos.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureCartsLoaded(ctx); err != nil {
		return pos.CartState{}, err
	}

	s.carts.Orders[s.carts.Active].PaymentMode = mode
	return s.snapshot(), s.persistCarts(ctx)
}

// ensureCartsLoaded restores cart state from storage, starting with one
// empty order tab on first run. Callers must hold s.mu.
func (s *posService) ensureCartsLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.store.Get(ctx, cartKey)
	if errors.Is(err, kv.ErrNotFound) {
		s.carts = pos.CartState{
			Orders: []entity.Order{{PaymentMode: defaultPayMode}},
			Active: 0,
		}
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}

	var state pos.CartState
	if err := json.Unmarshal([]byte(raw), &state); err != nil || len(state.Orders) == 0 {
		s.carts = pos.CartState{
			Orders: []entity.Order{{PaymentMode: defaultPayMode}},
			Active: 0,
		}
		s.loaded = true
		return nil
	}

	if state.Active < 0 || state.Active >= len(state.Orders) {
		state.Active = 0
	}

	s.carts = state
	s.loaded = true
	return nil
}

func (s *posService) persistCarts(ctx context.Context) error {
	raw, err := json.Marshal(s.carts)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, cartKey, string(raw)); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to persist cart state")
		return err
	}

	return nil
}

// snapshot deep copies cart state so callers never alias internal slices.
// Callers must hold s.mu.
func (s *posService) snapshot() pos.CartState {
	orders := make([]entity.Order, len(s.carts.Orders))
	for i, o := range s.carts.Orders {
		orders[i] = entity.Order{
			Items:       append([]entity.CartItem(nil), o.Items...),
			PaymentMode: o.PaymentMode,
		}
	}
	return pos.CartState{Orders: orders, Active: s.carts.Active}
}
