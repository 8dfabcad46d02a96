package posService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/entity"
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SubmitOrder sends every line item of the active order to the sheet
// backend, one call per item, then resets the active tab. Items are
// submitted concurrently; one failure aborts the whole submission.
func (s *posService) SubmitOrder(ctx context.Context) (pos.CartState, error) {
	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return pos.CartState{}, err
	}

	s.mu.Lock()
	if err := s.ensureCartsLoaded(ctx); err != nil {
		s.mu.Unlock()
		return pos.CartState{}, err
	}

	tab := s.carts.Active
	order := s.carts.Orders[tab]
	s.mu.Unlock()

	if len(order.Items) == 0 {
		return pos.CartState{}, pos.ErrEmptyCart
	}

	payMode := order.PaymentMode
	if payMode == "" {
		payMode = defaultPayMode
	}

	date := time.Now().Format("2006-01-02")

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range order.Items {
		item := item
		g.Go(func() error {
			return s.client.SubmitOrder(gctx, active.URL, date, item, payMode)
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": active.ID,
			"items":    len(order.Items),
			"error":    err.Error(),
		}).Error("Order submission failed")
		return pos.CartState{}, pos.ErrSubmitFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reset the tab that was submitted, not whichever tab is active now;
	// the operator may have switched or removed tabs during the fan-out.
	if tab < len(s.carts.Orders) {
		s.carts.Orders[tab] = entity.Order{PaymentMode: defaultPayMode}
	}
	return s.snapshot(), s.persistCarts(ctx)
}

func (s *posService) SubmitExpense(ctx context.Context, req pos.SubmitExpenseRequest) (entity.ExpenseRecord, error) {
	if req.Amount <= 0 {
		return entity.ExpenseRecord{}, pos.ErrInvalidAmount
	}

	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return entity.ExpenseRecord{}, err
	}

	rec := entity.ExpenseRecord{
		Date:        req.Date,
		Description: req.Description,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Category:    req.Category,
		Remarks:     req.Remarks,
	}
	if rec.Date == "" {
		rec.Date = time.Now().Format("2006-01-02")
	}
	if rec.PaymentMode == "" {
		rec.PaymentMode = defaultPayMode
	}
	if rec.Category == "" {
		rec.Category = "General"
	}

	if err := s.client.SubmitExpense(ctx, active.URL, rec); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": active.ID,
			"error":    err.Error(),
		}).Error("Expense submission failed")
		return entity.ExpenseRecord{}, pos.ErrSubmitFailed
	}

	return rec, nil
}

func (s *posService) SubmitDeposit(ctx context.Context, req pos.SubmitDepositRequest) (entity.DepositRecord, error) {
	if req.Amount <= 0 {
		return entity.DepositRecord{}, pos.ErrInvalidAmount
	}

	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return entity.DepositRecord{}, err
	}

	rec := entity.DepositRecord{
		Amount:      req.Amount,
		Mode:        req.Mode,
		DepositedBy: req.DepositedBy,
	}
	if rec.Mode == "" {
		rec.Mode = defaultPayMode
	}
	if rec.DepositedBy == "" {
		rec.DepositedBy = "Counter"
	}

	if err := s.client.SubmitDeposit(ctx, active.URL, rec); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": active.ID,
			"error":    err.Error(),
		}).Error("Deposit submission failed")
		return entity.DepositRecord{}, pos.ErrSubmitFailed
	}

	return rec, nil
}

// SubmitCharging computes the session amount from the battery delta and
// energy drawn before forwarding. Tariffs fall back to configured rates
// when the request leaves them unset.
func (s *posService) SubmitCharging(ctx context.Context, req pos.SubmitChargingRequest) (entity.ChargingRecord, error) {
	if req.EndPercent <= req.StartPercent {
		return entity.ChargingRecord{}, pos.ErrInvalidCharging
	}

	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return entity.ChargingRecord{}, err
	}

	ratePerPct := req.RatePerPct
	if ratePerPct <= 0 {
		ratePerPct = s.ratePerPct
	}
	ratePerUnit := req.RatePerUnit
	if ratePerUnit <= 0 {
		ratePerUnit = s.ratePerUnit
	}

	rec := entity.ChargingRecord{
		Date:         req.Date,
		StartPercent: req.StartPercent,
		EndPercent:   req.EndPercent,
		RatePerPct:   ratePerPct,
		Kcal:         req.Kcal,
		RatePerUnit:  ratePerUnit,
		PaymentMode:  req.PaymentMode,
	}
	if rec.Date == "" {
		rec.Date = time.Now().Format("2006-01-02")
	}
	if rec.PaymentMode == "" {
		rec.PaymentMode = defaultPayMode
	}

	rec.Amount = (rec.EndPercent-rec.StartPercent)*rec.RatePerPct + rec.Kcal*rec.RatePerUnit

	if err := s.client.SubmitCharging(ctx, active.URL, rec); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": active.ID,
			"error":    err.Error(),
		}).Error("Charging submission failed")
		return entity.ChargingRecord{}, pos.ErrSubmitFailed
	}

	return rec, nil
}
