package pos

import "EnergyPalace/internal/entity"

// CartState is the whole point-of-sale cart surface: every open order tab
// plus which one is currently being edited.
type CartState struct {
	Orders []entity.Order `json:"orders"`
	Active int            `json:"active"`
}

type ProductListResponse struct {
	Products []entity.Product `json:"products"`
	SheetID  string           `json:"sheet_id"`
	Cached   bool             `json:"cached"`
}

type InsightsResponse struct {
	Rows [][]string `json:"rows"`
}

type AddToCartRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Qty  int    `json:"qty" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Qty  int    `json:"qty" validate:"required,min=1"`
}

type RemoveFromCartRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

type SetPayModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=Cash Fonepay Esewa Credit"`
}

type SwitchOrderRequest struct {
	Index int `json:"index" validate:"min=0"`
}

type SubmitExpenseRequest struct {
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required,min=1,max=200"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentMode string  `json:"payment_mode" validate:"omitempty,oneof=Cash Fonepay Esewa Credit"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Remarks     string  `json:"remarks" validate:"omitempty,max=500"`
}

type SubmitDepositRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Mode        string  `json:"mode" validate:"omitempty,oneof=Cash Fonepay Esewa Credit"`
	DepositedBy string  `json:"deposited_by" validate:"omitempty,max=100"`
}

type SubmitChargingRequest struct {
	Date         string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartPercent float64 `json:"start_percent" validate:"min=0,max=100"`
	EndPercent   float64 `json:"end_percent" validate:"required,min=0,max=100"`
	RatePerPct   float64 `json:"rate_per_pct" validate:"omitempty,gt=0"`
	Kcal         float64 `json:"kcal" validate:"omitempty,min=0"`
	RatePerUnit  float64 `json:"rate_per_unit" validate:"omitempty,gt=0"`
	PaymentMode  string  `json:"payment_mode" validate:"omitempty,oneof=Cash Fonepay Esewa Credit"`
}
