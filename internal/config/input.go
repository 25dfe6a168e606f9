package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"taxengine/internal/calculation"
)

// AssessmentInput is one assessment's inputs and payment history as read from
// a taxsim input file.
type AssessmentInput struct {
	FinancialYear  string
	TaxRegime      string
	Profit         calculation.ProfitInputs
	Reconciliation calculation.ReconciliationInputs
	Credits        calculation.TaxCredits
	Payments       []calculation.LedgerPayment
}

type profitFile struct {
	YtdRevenue                  decimal.Decimal
	YtdExpenses                 decimal.Decimal
	ProjectedAdditionalRevenue  decimal.Decimal
	ProjectedAdditionalExpenses decimal.Decimal
	ProjectedDepreciation       decimal.Decimal
	ProjectedOtherIncome        decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for profitFile
func (p *profitFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		YtdRevenue                  string `yaml:"ytd_revenue"`
		YtdExpenses                 string `yaml:"ytd_expenses"`
		ProjectedAdditionalRevenue  string `yaml:"projected_additional_revenue"`
		ProjectedAdditionalExpenses string `yaml:"projected_additional_expenses"`
		ProjectedDepreciation       string `yaml:"projected_depreciation"`
		ProjectedOtherIncome        string `yaml:"projected_other_income"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if p.YtdRevenue, err = parseAmount("ytd_revenue", aux.YtdRevenue); err != nil {
		return err
	}
	if p.YtdExpenses, err = parseAmount("ytd_expenses", aux.YtdExpenses); err != nil {
		return err
	}
	if p.ProjectedAdditionalRevenue, err = parseAmount("projected_additional_revenue", aux.ProjectedAdditionalRevenue); err != nil {
		return err
	}
	if p.ProjectedAdditionalExpenses, err = parseAmount("projected_additional_expenses", aux.ProjectedAdditionalExpenses); err != nil {
		return err
	}
	if p.ProjectedDepreciation, err = parseAmount("projected_depreciation", aux.ProjectedDepreciation); err != nil {
		return err
	}
	if p.ProjectedOtherIncome, err = parseAmount("projected_other_income", aux.ProjectedOtherIncome); err != nil {
		return err
	}
	return nil
}

type additionsFile struct {
	DepreciationAddback           decimal.Decimal
	DisallowedCashPayments        decimal.Decimal
	DisallowedGratuityProvision   decimal.Decimal
	DisallowedUnpaidStatutoryDues decimal.Decimal
	OtherDisallowances            decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for additionsFile
func (a *additionsFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		DepreciationAddback           string `yaml:"depreciation_addback"`
		DisallowedCashPayments        string `yaml:"disallowed_cash_payments"`
		DisallowedGratuityProvision   string `yaml:"disallowed_gratuity_provision"`
		DisallowedUnpaidStatutoryDues string `yaml:"disallowed_unpaid_statutory_dues"`
		OtherDisallowances            string `yaml:"other_disallowances"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if a.DepreciationAddback, err = parseAmount("depreciation_addback", aux.DepreciationAddback); err != nil {
		return err
	}
	if a.DisallowedCashPayments, err = parseAmount("disallowed_cash_payments", aux.DisallowedCashPayments); err != nil {
		return err
	}
	if a.DisallowedGratuityProvision, err = parseAmount("disallowed_gratuity_provision", aux.DisallowedGratuityProvision); err != nil {
		return err
	}
	if a.DisallowedUnpaidStatutoryDues, err = parseAmount("disallowed_unpaid_statutory_dues", aux.DisallowedUnpaidStatutoryDues); err != nil {
		return err
	}
	if a.OtherDisallowances, err = parseAmount("other_disallowances", aux.OtherDisallowances); err != nil {
		return err
	}
	return nil
}

type deductionsFile struct {
	TaxDepreciation decimal.Decimal
	Deduction80C    decimal.Decimal
	Deduction80D    decimal.Decimal
	OtherDeductions decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for deductionsFile
func (d *deductionsFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		TaxDepreciation string `yaml:"tax_depreciation"`
		Deduction80C    string `yaml:"deduction_80c"`
		Deduction80D    string `yaml:"deduction_80d"`
		OtherDeductions string `yaml:"other_deductions"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if d.TaxDepreciation, err = parseAmount("tax_depreciation", aux.TaxDepreciation); err != nil {
		return err
	}
	if d.Deduction80C, err = parseAmount("deduction_80c", aux.Deduction80C); err != nil {
		return err
	}
	if d.Deduction80D, err = parseAmount("deduction_80d", aux.Deduction80D); err != nil {
		return err
	}
	if d.OtherDeductions, err = parseAmount("other_deductions", aux.OtherDeductions); err != nil {
		return err
	}
	return nil
}

type creditsFile struct {
	TdsReceivable decimal.Decimal
	TcsCredit     decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for creditsFile
func (c *creditsFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		TdsReceivable string `yaml:"tds_receivable"`
		TcsCredit     string `yaml:"tcs_credit"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	var err error
	if c.TdsReceivable, err = parseAmount("tds_receivable", aux.TdsReceivable); err != nil {
		return err
	}
	if c.TcsCredit, err = parseAmount("tcs_credit", aux.TcsCredit); err != nil {
		return err
	}
	return nil
}

type paymentFile struct {
	Date   time.Time
	Amount decimal.Decimal
}

// UnmarshalYAML implements custom YAML unmarshaling for paymentFile
func (p *paymentFile) UnmarshalYAML(value *yaml.Node) error {
	type alias struct {
		Date   string `yaml:"date"`
		Amount string `yaml:"amount"`
	}

	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", aux.Date)
	if err != nil {
		return fmt.Errorf("payment date: %w", err)
	}
	amount, err := parseAmount("payment amount", aux.Amount)
	if err != nil {
		return err
	}
	p.Date = date
	p.Amount = amount
	return nil
}

type assessmentInputFile struct {
	FinancialYear string         `yaml:"financial_year"`
	TaxRegime     string         `yaml:"tax_regime"`
	Profit        profitFile     `yaml:"profit"`
	Additions     additionsFile  `yaml:"additions"`
	Deductions    deductionsFile `yaml:"deductions"`
	Credits       creditsFile    `yaml:"credits"`
	Payments      []paymentFile  `yaml:"payments"`
}

// LoadAssessmentInput reads and validates a taxsim input file
func LoadAssessmentInput(path string) (*AssessmentInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var file assessmentInputFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input := &AssessmentInput{
		FinancialYear: file.FinancialYear,
		TaxRegime:     file.TaxRegime,
		Profit: calculation.ProfitInputs{
			YtdRevenue:                  file.Profit.YtdRevenue,
			YtdExpenses:                 file.Profit.YtdExpenses,
			ProjectedAdditionalRevenue:  file.Profit.ProjectedAdditionalRevenue,
			ProjectedAdditionalExpenses: file.Profit.ProjectedAdditionalExpenses,
			ProjectedDepreciation:       file.Profit.ProjectedDepreciation,
			ProjectedOtherIncome:        file.Profit.ProjectedOtherIncome,
		},
		Reconciliation: calculation.ReconciliationInputs{
			DepreciationAddback:           file.Additions.DepreciationAddback,
			DisallowedCashPayments:        file.Additions.DisallowedCashPayments,
			DisallowedGratuityProvision:   file.Additions.DisallowedGratuityProvision,
			DisallowedUnpaidStatutoryDues: file.Additions.DisallowedUnpaidStatutoryDues,
			OtherDisallowances:            file.Additions.OtherDisallowances,
			TaxDepreciation:               file.Deductions.TaxDepreciation,
			Deduction80C:                  file.Deductions.Deduction80C,
			Deduction80D:                  file.Deductions.Deduction80D,
			OtherDeductions:               file.Deductions.OtherDeductions,
		},
		Credits: calculation.TaxCredits{
			TdsReceivable: file.Credits.TdsReceivable,
			TcsCredit:     file.Credits.TcsCredit,
		},
	}
	if input.TaxRegime == "" {
		input.TaxRegime = calculation.RegimeNormal
	}
	for _, p := range file.Payments {
		input.Payments = append(input.Payments, calculation.LedgerPayment{Date: p.Date, Amount: p.Amount})
	}

	if err := input.validate(); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return input, nil
}

func (in *AssessmentInput) validate() error {
	if in.FinancialYear == "" {
		return fmt.Errorf("financial_year is required")
	}
	if _, err := calculation.ParseFinancialYear(in.FinancialYear); err != nil {
		return err
	}
	for i, p := range in.Payments {
		if !p.Amount.IsPositive() {
			return fmt.Errorf("payment %d: amount must be positive", i+1)
		}
	}
	return nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
