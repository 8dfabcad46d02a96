package pos

import "EnergyPalace/pkg/response"

var (
	ErrProductNotFound  = response.NewError(404, "product not found in catalog")
	ErrProductsFetch    = response.NewError(502, "could not load products from the sheet backend")
	ErrInsightsFetch    = response.NewError(502, "could not load insights from the sheet backend")
	ErrEmptyCart        = response.NewError(400, "cart is empty")
	ErrOrderNotFound    = response.NewError(404, "order tab not found")
	ErrLastOrder        = response.NewError(400, "the last order tab cannot be removed")
	ErrInvalidQuantity  = response.NewError(400, "quantity must be at least 1")
	ErrItemNotInCart    = response.NewError(404, "item is not in the cart")
	ErrSubmitFailed     = response.NewError(502, "submission to the sheet backend failed")
	ErrInvalidAmount    = response.NewError(400, "amount must be greater than zero")
	ErrInvalidCharging  = response.NewError(400, "end percent must be greater than start percent")
)
