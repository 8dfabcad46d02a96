package entity

type Product struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Category string  `json:"category"`
}

type CartItem struct {
	Name string  `json:"name"`
	Qty  int     `json:"qty"`
	Rate float64 `json:"rate"`
}

type Order struct {
	Items       []CartItem `json:"items"`
	PaymentMode string     `json:"payment_mode"`
}

type ExpenseRecord struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
	Category    string  `json:"category"`
	Remarks     string  `json:"remarks"`
}

type DepositRecord struct {
	Amount      float64 `json:"amount"`
	Mode        string  `json:"mode"`
	DepositedBy string  `json:"deposited_by"`
}

type ChargingRecord struct {
	Date          string  `json:"date"`
	StartPercent  float64 `json:"start_percent"`
	EndPercent    float64 `json:"end_percent"`
	RatePerPct    float64 `json:"rate_per_pct"`
	Kcal          float64 `json:"kcal"`
	RatePerUnit   float64 `json:"rate_per_unit"`
	Amount        float64 `json:"amount"`
	PaymentMode   string  `json:"payment_mode"`
}
