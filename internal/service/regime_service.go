package service

import (
	"context"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"

	"github.com/shopspring/decimal"
)

// RegimeResponse quotes one regime's rate components as percentages.
type RegimeResponse struct {
	Code          string `json:"code"`
	BaseRate      string `json:"base_rate"`
	SurchargeRate string `json:"surcharge_rate"`
	CessRate      string `json:"cess_rate"`
	EffectiveRate string `json:"effective_rate"`
}

type InstallmentRuleResponse struct {
	Quarter       int    `json:"quarter"`
	DueMonth      int    `json:"due_month"`
	DueDay        int    `json:"due_day"`
	CumulativePct string `json:"cumulative_pct"`
}

// RuleTableResponse is the full statutory table the engine is running with,
// for display on the console's reference screen.
type RuleTableResponse struct {
	Regimes             []RegimeResponse          `json:"regimes"`
	Installments        []InstallmentRuleResponse `json:"installments"`
	MonthlyInterestRate string                    `json:"monthly_interest_rate"`
	DefermentMonths     []int                     `json:"deferment_months"`
}

type RegimeService interface {
	GetRuleTable(ctx context.Context) RuleTableResponse
	GetRegime(ctx context.Context, code string) (RegimeResponse, error)
}

type regimeService struct {
	rules calculation.Rules
}

func NewRegimeService(rules calculation.Rules) RegimeService {
	return &regimeService{rules: rules}
}

func (s *regimeService) GetRuleTable(_ context.Context) RuleTableResponse {
	resp := RuleTableResponse{
		Regimes:             make([]RegimeResponse, 0, len(s.rules.Regimes)),
		Installments:        make([]InstallmentRuleResponse, 0, len(s.rules.Installments)),
		MonthlyInterestRate: asPercent(s.rules.Interest.MonthlyRate),
		DefermentMonths:     s.rules.Interest.DefermentMonths,
	}

	for _, code := range s.rules.RegimeCodes() {
		rates := s.rules.Regimes[code]
		resp.Regimes = append(resp.Regimes, toRegimeResponse(code, rates))
	}
	for _, inst := range s.rules.Installments {
		resp.Installments = append(resp.Installments, InstallmentRuleResponse{
			Quarter:       inst.Quarter,
			DueMonth:      int(inst.DueMonth),
			DueDay:        inst.DueDay,
			CumulativePct: inst.CumulativePct.StringFixed(2),
		})
	}
	return resp
}

func (s *regimeService) GetRegime(_ context.Context, code string) (RegimeResponse, error) {
	rates, ok := s.rules.RatesFor(code)
	if !ok {
		return RegimeResponse{}, apperr.NotFound("regime")
	}
	return toRegimeResponse(code, rates), nil
}

func toRegimeResponse(code string, rates calculation.RegimeRates) RegimeResponse {
	return RegimeResponse{
		Code:          code,
		BaseRate:      asPercent(rates.BaseRate),
		SurchargeRate: asPercent(rates.SurchargeRate),
		CessRate:      asPercent(rates.CessRate),
		EffectiveRate: asPercent(rates.EffectiveRate()),
	}
}

func asPercent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2)
}
