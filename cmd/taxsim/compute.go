package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"taxengine/internal/calculation"
	"taxengine/internal/config"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	computeInput  string
	computeAsOf   string
	computeRules  string
	computeFormat string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute liability, schedule, and interest from an input file",
	RunE:  runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeInput, "input", "i", "", "assessment input YAML (required)")
	_ = computeCmd.MarkFlagRequired("input")
	computeCmd.Flags().StringVar(&computeAsOf, "as-of", "", "valuation date YYYY-MM-DD (default today)")
	computeCmd.Flags().StringVar(&computeRules, "rules", "", "regime rules YAML overriding the statutory defaults")
	computeCmd.Flags().StringVarP(&computeFormat, "format", "f", "text", "output format: text or json")
	rootCmd.AddCommand(computeCmd)
}

type reportLine struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type reportInstallment struct {
	Quarter          int    `json:"quarter"`
	DueDate          string `json:"due_date"`
	CumulativePct    string `json:"cumulative_pct"`
	CumulativeTarget string `json:"cumulative_target"`
	TaxPayable       string `json:"tax_payable"`
	TaxPaid          string `json:"tax_paid"`
	Shortfall        string `json:"shortfall"`
	Status           string `json:"status"`
	Overdue          bool   `json:"overdue"`
	Interest234C     string `json:"interest_234c"`
}

type computeReport struct {
	FinancialYear string `json:"financial_year"`
	TaxRegime     string `json:"tax_regime"`
	AsOf          string `json:"as_of"`

	BookProfit      string       `json:"book_profit"`
	Additions       []reportLine `json:"additions"`
	TotalAdditions  string       `json:"total_additions"`
	Deductions      []reportLine `json:"deductions"`
	TotalDeductions string       `json:"total_deductions"`
	TaxableIncome   string       `json:"taxable_income"`

	BaseTax           string `json:"base_tax"`
	Surcharge         string `json:"surcharge"`
	Cess              string `json:"cess"`
	TotalTaxLiability string `json:"total_tax_liability"`
	NetTaxPayable     string `json:"net_tax_payable"`

	Schedule []reportInstallment `json:"schedule"`

	TotalInterest234C string `json:"total_interest_234c"`
	AdvanceTaxPaid    string `json:"advance_tax_paid"`
	Shortfall234B     string `json:"shortfall_234b"`
	Months234B        int    `json:"months_234b"`
	Interest234B      string `json:"interest_234b"`
	TotalInterest     string `json:"total_interest"`
}

func runCompute(cmd *cobra.Command, _ []string) error {
	if computeFormat != "text" && computeFormat != "json" {
		return fmt.Errorf("unknown format %q, expected text or json", computeFormat)
	}

	input, err := config.LoadAssessmentInput(computeInput)
	if err != nil {
		return err
	}
	rules, err := config.LoadRules(computeRules)
	if err != nil {
		return err
	}

	fy, err := calculation.ParseFinancialYear(input.FinancialYear)
	if err != nil {
		return err
	}
	asOf := time.Now().UTC()
	if computeAsOf != "" {
		asOf, err = time.Parse("2006-01-02", computeAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD", computeAsOf)
		}
	}

	rates, ok := rules.RatesFor(input.TaxRegime)
	if !ok {
		return fmt.Errorf("unknown tax regime %q", input.TaxRegime)
	}

	statement := calculation.Reconcile(input.Profit.BookProfit(), input.Reconciliation)
	liability := calculation.NewLiabilityCalculator(rates).Calculate(statement.TaxableIncome, input.Credits)

	sc := calculation.NewScheduleCalculator(rules.Installments)
	plan := sc.Plan(liability.NetTaxPayable, fy)
	statuses := sc.Apply(plan, input.Payments, asOf, true)

	ic := calculation.NewInterestCalculator(rules.Interest)
	lines, total234C := ic.Deferment234C(statuses)
	annual := ic.Shortfall234B(liability.NetTaxPayable, input.Payments, fy, asOf)

	report := buildReport(input, fy, asOf, statement, liability, statuses, lines, total234C, annual)

	if computeFormat == "json" {
		out, marshalErr := json.MarshalIndent(report, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	printReport(cmd, report)
	return nil
}

func buildReport(
	input *config.AssessmentInput,
	fy calculation.FinancialYear,
	asOf time.Time,
	statement calculation.ReconciliationStatement,
	liability calculation.LiabilityResult,
	statuses []calculation.InstallmentStatus,
	lines []calculation.QuarterInterest,
	total234C decimal.Decimal,
	annual calculation.Annual234B,
) computeReport {
	report := computeReport{
		FinancialYear: fy.Label(),
		TaxRegime:     input.TaxRegime,
		AsOf:          asOf.Format("2006-01-02"),

		BookProfit:      statement.BookProfit.StringFixed(2),
		TotalAdditions:  statement.TotalAdditions.StringFixed(2),
		TotalDeductions: statement.TotalDeductions.StringFixed(2),
		TaxableIncome:   statement.TaxableIncome.StringFixed(2),

		BaseTax:           liability.BaseTax.StringFixed(2),
		Surcharge:         liability.Surcharge.StringFixed(2),
		Cess:              liability.Cess.StringFixed(2),
		TotalTaxLiability: liability.TotalTaxLiability.StringFixed(2),
		NetTaxPayable:     liability.NetTaxPayable.StringFixed(2),

		TotalInterest234C: total234C.StringFixed(2),
		AdvanceTaxPaid:    annual.AdvanceTaxPaid.StringFixed(2),
		Shortfall234B:     annual.Shortfall.StringFixed(2),
		Months234B:        annual.Months,
		Interest234B:      annual.Interest.StringFixed(2),
		TotalInterest:     total234C.Add(annual.Interest).StringFixed(2),
	}

	for _, l := range statement.Additions {
		report.Additions = append(report.Additions, reportLine{Code: l.Code, Label: l.Label, Amount: l.Amount.StringFixed(2)})
	}
	for _, l := range statement.Deductions {
		report.Deductions = append(report.Deductions, reportLine{Code: l.Code, Label: l.Label, Amount: l.Amount.StringFixed(2)})
	}
	for i, st := range statuses {
		report.Schedule = append(report.Schedule, reportInstallment{
			Quarter:          st.Quarter,
			DueDate:          st.DueDate.Format("2006-01-02"),
			CumulativePct:    st.CumulativePct.StringFixed(0),
			CumulativeTarget: st.CumulativeTarget.StringFixed(2),
			TaxPayable:       st.TaxPayable.StringFixed(2),
			TaxPaid:          st.TaxPaid.StringFixed(2),
			Shortfall:        st.Shortfall.StringFixed(2),
			Status:           st.Status,
			Overdue:          st.Overdue,
			Interest234C:     lines[i].Interest.StringFixed(2),
		})
	}
	return report
}

func printReport(cmd *cobra.Command, report computeReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Advance tax computation  FY %s  regime %s  as of %s\n\n", report.FinancialYear, report.TaxRegime, report.AsOf)

	fmt.Fprintf(out, "Book profit            %s\n", report.BookProfit)
	for _, l := range report.Additions {
		fmt.Fprintf(out, "  + %-20s %s\n", l.Label, l.Amount)
	}
	for _, l := range report.Deductions {
		fmt.Fprintf(out, "  - %-20s %s\n", l.Label, l.Amount)
	}
	fmt.Fprintf(out, "Taxable income         %s\n\n", report.TaxableIncome)

	fmt.Fprintf(out, "Base tax               %s\n", report.BaseTax)
	fmt.Fprintf(out, "Surcharge              %s\n", report.Surcharge)
	fmt.Fprintf(out, "Cess                   %s\n", report.Cess)
	fmt.Fprintf(out, "Total tax liability    %s\n", report.TotalTaxLiability)
	fmt.Fprintf(out, "Net tax payable        %s\n\n", report.NetTaxPayable)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "QTR\tDUE\tTARGET\tPAYABLE\tPAID\tSHORTFALL\tSTATUS\t234C")
	for _, s := range report.Schedule {
		status := s.Status
		if s.Overdue {
			status += " (overdue)"
		}
		fmt.Fprintf(w, "Q%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Quarter, s.DueDate, s.CumulativeTarget, s.TaxPayable, s.TaxPaid, s.Shortfall, status, s.Interest234C)
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\nInterest 234C          %s\n", report.TotalInterest234C)
	fmt.Fprintf(out, "Advance tax paid       %s\n", report.AdvanceTaxPaid)
	fmt.Fprintf(out, "Interest 234B          %s  (shortfall %s x %d months)\n", report.Interest234B, report.Shortfall234B, report.Months234B)
	fmt.Fprintf(out, "Total interest         %s\n", report.TotalInterest)
}
