package voiceService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/nlp"
	"context"
	"errors"
	"fmt"
	"strings"
)

// errNoProductMatch reports an order whose item did not resolve against the
// product catalog. The caller surfaces this separately from real failures.
var errNoProductMatch = errors.New("no product matched the spoken item")

// execute routes a parsed command to the point of sale. Orders go to the
// cart, the money commands submit straight to the sheet backend.
func (s *voiceService) execute(ctx context.Context, parsed *nlp.ParsedCommand, language string) error {
	switch parsed.Intent {
	case entity.IntentOrder:
		return s.executeOrder(ctx, parsed)
	case entity.IntentExpense:
		return s.executeExpense(ctx, parsed)
	case entity.IntentDeposit:
		return s.executeDeposit(ctx, parsed)
	case entity.IntentCharging:
		return s.executeCharging(ctx, parsed)
	default:
		return fmt.Errorf("no executor for intent %q", parsed.Intent)
	}
}

func (s *voiceService) executeOrder(ctx context.Context, parsed *nlp.ParsedCommand) error {
	item := parsed.Fields["item"]
	qty := s.utils.ParseQuantity(parsed.Fields["quantity"])

	_, err := s.pos.AddToCart(ctx, item, qty)
	if errors.Is(err, pos.ErrProductNotFound) {
		return errNoProductMatch
	}
	return err
}

func (s *voiceService) executeExpense(ctx context.Context, parsed *nlp.ParsedCommand) error {
	amount := s.utils.ParseAmount(parsed.Fields["amount"])

	description := parsed.Fields["description"]
	if description == "" {
		description = "Voice expense"
	}

	_, err := s.pos.SubmitExpense(ctx, pos.SubmitExpenseRequest{
		Description: description,
		Amount:      amount,
		Category:    "Voice",
	})
	return err
}

func (s *voiceService) executeDeposit(ctx context.Context, parsed *nlp.ParsedCommand) error {
	amount := s.utils.ParseAmount(parsed.Fields["amount"])

	_, err := s.pos.SubmitDeposit(ctx, pos.SubmitDepositRequest{
		Amount:      amount,
		Mode:        normalizeMethod(parsed.Fields["method"]),
		DepositedBy: "Voice Assistant",
	})
	return err
}

func (s *voiceService) executeCharging(ctx context.Context, parsed *nlp.ParsedCommand) error {
	start := s.utils.ParseAmount(parsed.Fields["start"])
	end := s.utils.ParseAmount(parsed.Fields["end"])

	_, err := s.pos.SubmitCharging(ctx, pos.SubmitChargingRequest{
		StartPercent: start,
		EndPercent:   end,
	})
	return err
}

// normalizeMethod maps free-form spoken payment methods onto the modes the
// sheet backend accepts.
func normalizeMethod(spoken string) string {
	lowered := strings.ToLower(spoken)
	switch {
	case strings.Contains(lowered, "fonepay"), strings.Contains(lowered, "फोनपे"):
		return "Fonepay"
	case strings.Contains(lowered, "esewa"), strings.Contains(lowered, "इसेवा"):
		return "Esewa"
	case strings.Contains(lowered, "credit"), strings.Contains(lowered, "उधारो"):
		return "Credit"
	default:
		return "Cash"
	}
}
