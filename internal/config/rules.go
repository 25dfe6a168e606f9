package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"taxengine/internal/calculation"
)

// regimeRatesFile is the on-disk shape of one regime's rate block. Rates are
// written as strings so they parse through decimal without a float detour.
type regimeRatesFile struct {
	BaseRate      decimal.Decimal
	SurchargeRate decimal.Decimal
	CessRate      decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for regimeRatesFile
func (r *regimeRatesFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		BaseRate      string `yaml:"base_rate"`
		SurchargeRate string `yaml:"surcharge_rate"`
		CessRate      string `yaml:"cess_rate"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if r.BaseRate, err = decimal.NewFromString(aux.BaseRate); err != nil {
		return fmt.Errorf("base_rate: %w", err)
	}
	if r.SurchargeRate, err = decimal.NewFromString(aux.SurchargeRate); err != nil {
		return fmt.Errorf("surcharge_rate: %w", err)
	}
	if r.CessRate, err = decimal.NewFromString(aux.CessRate); err != nil {
		return fmt.Errorf("cess_rate: %w", err)
	}
	return nil
}

type installmentFile struct {
	Quarter       int
	DueMonth      int
	DueDay        int
	CumulativePct decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for installmentFile
func (i *installmentFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Quarter       int    `yaml:"quarter"`
		DueMonth      int    `yaml:"due_month"`
		DueDay        int    `yaml:"due_day"`
		CumulativePct string `yaml:"cumulative_pct"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	pct, err := decimal.NewFromString(aux.CumulativePct)
	if err != nil {
		return fmt.Errorf("cumulative_pct: %w", err)
	}
	i.Quarter = aux.Quarter
	i.DueMonth = aux.DueMonth
	i.DueDay = aux.DueDay
	i.CumulativePct = pct
	return nil
}

type interestFile struct {
	MonthlyRate     decimal.Decimal
	DefermentMonths []int
}

// UnmarshalYAML implements custom YAML unmarshaling for interestFile
func (f *interestFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		MonthlyRate     string `yaml:"monthly_rate"`
		DefermentMonths []int  `yaml:"deferment_months"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	rate, err := decimal.NewFromString(aux.MonthlyRate)
	if err != nil {
		return fmt.Errorf("monthly_rate: %w", err)
	}
	f.MonthlyRate = rate
	f.DefermentMonths = aux.DefermentMonths
	return nil
}

type rulesFile struct {
	Regimes      map[string]regimeRatesFile `yaml:"regimes"`
	Installments []installmentFile          `yaml:"installments"`
	Interest     *interestFile              `yaml:"interest"`
}

// LoadRules returns the statutory rate tables, overlaid with the YAML file at
// path when one is given. Overrides are sectional: a file that only lists
// regimes keeps the default installment and interest tables.
func LoadRules(path string) (calculation.Rules, error) {
	rules := calculation.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return calculation.Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return calculation.Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	for code, rates := range file.Regimes {
		rules.Regimes[code] = calculation.RegimeRates{
			BaseRate:      rates.BaseRate,
			SurchargeRate: rates.SurchargeRate,
			CessRate:      rates.CessRate,
		}
	}
	if len(file.Installments) > 0 {
		installments := make([]calculation.InstallmentRule, 0, len(file.Installments))
		for _, in := range file.Installments {
			installments = append(installments, calculation.InstallmentRule{
				Quarter:       in.Quarter,
				DueMonth:      time.Month(in.DueMonth),
				DueDay:        in.DueDay,
				CumulativePct: in.CumulativePct,
			})
		}
		rules.Installments = installments
	}
	if file.Interest != nil {
		rules.Interest = calculation.InterestRules{
			MonthlyRate:     file.Interest.MonthlyRate,
			DefermentMonths: file.Interest.DefermentMonths,
		}
	}

	if err := rules.Validate(); err != nil {
		return calculation.Rules{}, fmt.Errorf("invalid rules file: %w", err)
	}
	return rules, nil
}
