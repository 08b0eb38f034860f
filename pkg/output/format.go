// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-engine/internal/engine"
	"github.com/iwvelando/mortgage-engine/internal/scenario"
	"github.com/iwvelando/mortgage-engine/pkg/constants"
	"github.com/iwvelando/mortgage-engine/pkg/datetime"
	"github.com/iwvelando/mortgage-engine/pkg/format"
	"github.com/iwvelando/mortgage-engine/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named format.
func Write(w io.Writer, outputFormat string, results []scenario.Result) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return PrettyFormat(w, results)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []scenario.Result) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	for i, result := range results {
		b.WriteString(titleStyle.Render(fmt.Sprintf("--- Results for scenario %s ---", result.Name)))
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(summary(result)))
		b.WriteString("\n")

		if msg := impactMessage(result.Simulation.StrategyImpact); msg != "" {
			b.WriteString(successStyle.Render(msg))
			b.WriteString("\n")
		}
		if a := result.Simulation.Affordability; a != nil && a.Risky {
			b.WriteString(warningStyle.Render(fmt.Sprintf(
				"First installment takes %s of the monthly salary (above %s)",
				format.Percent(a.SalaryPercentage), format.Percent(constants.AffordabilityRiskThreshold))))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		plan := engine.NewRefinancingPlan(result.Config.RefinancingEvents)
		writeSchedule(&b, p, result.Simulation.Schedule, plan, result.Config.AnnualRate)

		if i < len(results)-1 {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func summary(result scenario.Result) string {
	sim := result.Simulation
	lines := []string{
		fmt.Sprintf("Loan amount:      %s", format.Currency(result.Config.LoanAmount())),
		fmt.Sprintf("Strategy:         %s", result.Config.Strategy),
		fmt.Sprintf("Months:           %d of %d", len(sim.Schedule), result.Config.MaxMonths()),
		fmt.Sprintf("Total interest:   %s", format.Currency(sim.Totals.TotalInterest)),
		fmt.Sprintf("Total extra:      %s", format.Currency(sim.Totals.TotalExtra)),
		fmt.Sprintf("Total ITF:        %s", format.Currency(sim.Totals.TotalITF)),
		fmt.Sprintf("Total paid:       %s", format.Currency(sim.Totals.TotalPayment)),
	}
	if len(sim.Schedule) > 0 {
		lines = append(lines,
			fmt.Sprintf("First installment: %s", format.Currency(sim.Schedule[0].Installment())),
			fmt.Sprintf("End date:         %s", datetime.Format(sim.StrategyImpact.NewEndDate)))
	}
	plan := engine.NewRefinancingPlan(result.Config.RefinancingEvents)
	if !plan.Empty() {
		for _, e := range plan.Events() {
			// Later events sharing a month never take effect.
			if first, _ := plan.EventForMonth(e.Month); first != e {
				continue
			}
			lines = append(lines, fmt.Sprintf("Refinancing:      month %d to TEA %s, closing costs %s",
				e.Month, format.Percent(e.NewRate), format.Currency(e.ClosingCosts)))
		}
	}
	if row, ok := sim.FirstCrossover(); ok {
		lines = append(lines, fmt.Sprintf("Crossover month:  %d", row.Month))
	}
	if a := sim.Affordability; a != nil {
		lines = append(lines, fmt.Sprintf("Salary share:     %s", format.Percent(a.SalaryPercentage)))
	}
	if o := result.Optimization; o != nil {
		line := fmt.Sprintf("Optimal monthly extra for crossover by month %d: %s", o.TargetMonth, o.ValueDisplay)
		if !o.Converged {
			line += " (not reached)"
		}
		lines = append(lines, line)
	}
	if c := result.Comparison; c != nil {
		lines = append(lines,
			fmt.Sprintf("reduce_term saves %s and %d months", format.Currency(c.ReduceTerm.SavedInterest), c.ReduceTerm.SavedMonths),
			fmt.Sprintf("reduce_payment saves %s", format.Currency(c.ReducePayment.SavedInterest)))
		if c.PostPrepaymentInstallment != nil {
			lines = append(lines, fmt.Sprintf("Installment after month %d: %s", c.PrepaymentMonth, format.Currency(*c.PostPrepaymentInstallment)))
		}
	}
	return strings.Join(lines, "\n")
}

func impactMessage(impact engine.StrategyImpact) string {
	if impact.SavedInterest <= 0 && impact.SavedMonths <= 0 {
		return ""
	}
	msg := fmt.Sprintf("You save %s in interest", format.Currency(impact.SavedInterest))
	if impact.SavedMonths > 0 {
		msg += fmt.Sprintf(" and finish %d months early", impact.SavedMonths)
	}
	return msg
}

func writeSchedule(b *strings.Builder, p *message.Printer, schedule []engine.ScheduleRow, plan engine.RefinancingPlan, baseRate float64) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s | %-10s | %14s | %11s | %12s | %11s | %9s | %8s | %6s | %12s | %14s | %s",
		"Month", "Date", "Balance", "Interest", "Amortization", "Extra", "Desgrav.", "Fire", "ITF", "Payment", "Ending", "Status")))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(strings.Repeat("_", 150)))
	b.WriteString("\n")

	for _, row := range schedule {
		if row.RefinancingEvent != nil {
			header := fmt.Sprintf("== %s | TEA %s from month %d ==",
				row.PeriodLabel, format.Percent(plan.ActiveRateForMonth(row.Month, baseRate)), row.Month)
			b.WriteString(tint(header, row.BackgroundColor))
			b.WriteString("\n")
		}
		line := p.Sprintf("%-5d | %-10s | %14.2f | %11.2f | %12.2f | %11.2f | %9.2f | %8.2f | %6.2f | %12.2f | %14.2f | %s",
			row.Month, datetime.Format(row.PaymentDate), row.BalanceStart, row.Interest, row.Amortization,
			row.ExtraCapital, row.Desgravamen, row.FireInsurance, row.TransactionTax, row.Payment, row.BalanceEnd,
			statusLabel(row))
		b.WriteString(tint(line, row.BackgroundColor))
		b.WriteString("\n")
	}
}

func statusLabel(row engine.ScheduleRow) string {
	label := string(row.Status)
	if row.IsCrossover {
		label += " *"
	}
	return label
}

var csvHeader = []string{
	"scenario", "month", "paymentDate", "days", "tea", "balanceStart", "interest", "desgravamen",
	"fireInsurance", "financialPayment", "amortization", "extraCapital", "itf", "payment",
	"balanceEnd", "interestSavings", "isCrossover", "status", "period",
}

// CsvFormat outputs one comma-separated row per schedule month per scenario.
func CsvFormat(w io.Writer, results []scenario.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, result := range results {
		for _, row := range result.Simulation.Schedule {
			if err := cw.Write(csvRecord(result.Name, row)); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString is CsvFormat into a string.
func CsvString(results []scenario.Result) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, results); err != nil {
		return "", err
	}
	return b.String(), nil
}

func csvRecord(name string, row engine.ScheduleRow) []string {
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return []string{
		name,
		strconv.Itoa(row.Month),
		datetime.Format(row.PaymentDate),
		strconv.Itoa(row.DaysInPeriod),
		strconv.FormatFloat(row.AnnualRate, 'f', -1, 64),
		money(row.BalanceStart),
		money(row.Interest),
		money(row.Desgravamen),
		money(row.FireInsurance),
		money(row.FinancialPayment),
		money(row.Amortization),
		money(row.ExtraCapital),
		money(row.TransactionTax),
		money(row.Payment),
		money(row.BalanceEnd),
		money(row.InterestSavings),
		strconv.FormatBool(row.IsCrossover),
		string(row.Status),
		row.PeriodLabel,
	}
}

// JSONFormat outputs the full results as indented JSON.
func JSONFormat(w io.Writer, results []scenario.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// ComparisonFormat prints the reduce_term versus reduce_payment table of every
// result that carries a comparison.
func ComparisonFormat(w io.Writer, results []scenario.Result) error {
	var b strings.Builder
	for _, result := range results {
		c := result.Comparison
		if c == nil {
			continue
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("--- Strategy comparison for scenario %s ---", result.Name)))
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-15s | %18s | %18s | %6s | %11s | %s",
			"Strategy", "Total interest", "Saved interest", "Months", "Saved months", "End date")))
		b.WriteString("\n")
		for _, o := range []engine.StrategyOutcome{c.ReduceTerm, c.ReducePayment} {
			fmt.Fprintf(&b, "%-15s | %18s | %18s | %6d | %11d | %s\n",
				o.Strategy, format.Currency(o.TotalInterest), format.Currency(o.SavedInterest),
				o.Months, o.SavedMonths, datetime.Format(o.EndDate))
		}
		if c.PostPrepaymentInstallment != nil {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("reduce_payment installment after month %d: %s",
				c.PrepaymentMonth, format.Currency(*c.PostPrepaymentInstallment))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
