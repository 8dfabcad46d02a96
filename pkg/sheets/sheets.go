package sheets

import (
	"EnergyPalace/internal/entity"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ItfSheets talks to a spreadsheet web-app endpoint: GET with an action query
// parameter returns JSON, POST with a form-encoded action + payload appends a
// row. Calls are best-effort with no retry.
type ItfSheets interface {
	GetProducts(ctx context.Context, baseURL string) ([]entity.Product, error)
	GetInsights(ctx context.Context, baseURL string) ([][]string, error)
	SubmitOrder(ctx context.Context, baseURL string, date string, item entity.CartItem, payMode string) error
	SubmitExpense(ctx context.Context, baseURL string, rec entity.ExpenseRecord) error
	SubmitDeposit(ctx context.Context, baseURL string, rec entity.DepositRecord) error
	SubmitCharging(ctx context.Context, baseURL string, rec entity.ChargingRecord) error
	TestConnection(ctx context.Context, baseURL string) error
	ExportCSV(ctx context.Context, sheetID string) ([][]string, error)
}

type client struct {
	http *http.Client
	log  *logrus.Logger
}

func New(log *logrus.Logger) ItfSheets {
	return &client{
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

func (c *client) GetProducts(ctx context.Context, baseURL string) ([]entity.Product, error) {
	body, err := c.get(ctx, baseURL, "getProducts")
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	var products []entity.Product
	for _, row := range rows {
		// Sheet layout is [id, name, rate, category].
		if len(row) < 4 {
			continue
		}
		name := cellString(row[1])
		category := cellString(row[3])
		if name == "" || category == "" {
			continue
		}
		products = append(products, entity.Product{
			Name:     name,
			Rate:     cellFloat(row[2]),
			Category: category,
		})
	}

	return products, nil
}

func (c *client) GetInsights(ctx context.Context, baseURL string) ([][]string, error) {
	body, err := c.get(ctx, baseURL, "getBepInsight")
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cellString(cell))
		}
		table = append(table, cells)
	}

	return table, nil
}

func (c *client) SubmitOrder(ctx context.Context, baseURL string, date string, item entity.CartItem, payMode string) error {
	form := url.Values{}
	form.Set("action", "submitOrder")
	form.Set("date", date)
	form.Set("item", item.Name)
	form.Set("qty", strconv.Itoa(item.Qty))
	form.Set("rate", formatAmount(item.Rate))
	form.Set("total", formatAmount(float64(item.Qty)*item.Rate))
	form.Set("payMode", payMode)
	return c.post(ctx, baseURL, form)
}

func (c *client) SubmitExpense(ctx context.Context, baseURL string, rec entity.ExpenseRecord) error {
	form := url.Values{}
	form.Set("action", "submitExpense")
	form.Set("date", rec.Date)
	form.Set("desc", rec.Description)
	form.Set("amt", formatAmount(rec.Amount))
	form.Set("paymode", rec.PaymentMode)
	form.Set("cat", rec.Category)
	form.Set("remarks", rec.Remarks)
	return c.post(ctx, baseURL, form)
}

func (c *client) SubmitDeposit(ctx context.Context, baseURL string, rec entity.DepositRecord) error {
	form := url.Values{}
	form.Set("action", "submitDeposit")
	form.Set("amount", formatAmount(rec.Amount))
	form.Set("mode", rec.Mode)
	form.Set("depositedBy", rec.DepositedBy)
	return c.post(ctx, baseURL, form)
}

func (c *client) SubmitCharging(ctx context.Context, baseURL string, rec entity.ChargingRecord) error {
	form := url.Values{}
	form.Set("action", "submitCharging")
	form.Set("date", rec.Date)
	form.Set("start", formatAmount(rec.StartPercent))
	form.Set("end", formatAmount(rec.EndPercent))
	form.Set("perpct", formatAmount(rec.RatePerPct))
	form.Set("kcal", formatAmount(rec.Kcal))
	form.Set("perunit", formatAmount(rec.RatePerUnit))
	form.Set("amount", formatAmount(rec.Amount))
	form.Set("paymode", rec.PaymentMode)
	return c.post(ctx, baseURL, form)
}

func (c *client) TestConnection(ctx context.Context, baseURL string) error {
	_, err := c.get(ctx, baseURL, "getProducts")
	return err
}

// ExportCSV pulls a raw sheet through the CSV export endpoint. Used for the
// read-only calculation sheets that are not served by the web app.
func (c *client) ExportCSV(ctx context.Context, sheetID string) ([][]string, error) {
	exportURL := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ParseCSV(string(body)), nil
}

func (c *client) get(ctx context.Context, baseURL string, action string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?action=%s", strings.TrimSpace(baseURL), action), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet backend error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (c *client) post(ctx context.Context, baseURL string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSpace(baseURL), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sheet backend error: %s", resp.Status)
	}

	c.log.WithFields(logrus.Fields{
		"action": form.Get("action"),
		"status": resp.StatusCode,
	}).Debug("Sheet submission accepted")

	return nil
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return formatAmount(v)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellFloat(cell interface{}) float64 {
	switch v := cell.(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
