package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// CSVFormatter implements the summary CSV output (one row per goal)
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"GoalID", "Goal", "TargetDate", "Months", "Amount", "RateAnnual", "ExistingCapital",
		"BasePayment", "DisplayPayment", "TotalInvested", "ExpectedInterest", "ProjectedValue",
		"Achievable", "Shortfall", "ROI", "ROIClass", "Rule72Years",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range report.Goals {
		vm := g.ViewModel
		rule72 := ""
		if g.Rule72OK {
			rule72 = toDecimal(g.Rule72Years).StringFixed(2)
		}
		row := []string{
			vm.GoalID,
			vm.GoalName,
			g.TargetDate.Format("2006-01-02"),
			strconv.Itoa(vm.MonthsUntil),
			toDecimal(vm.GoalAmount).StringFixed(2),
			toDecimal(g.Goal.RateAnnual + report.RateChange).StringFixed(2),
			toDecimal(vm.ExistingCapital).StringFixed(2),
			toDecimal(vm.BasePayment).StringFixed(2),
			toDecimal(vm.DisplayPayment).StringFixed(0),
			toDecimal(vm.TotalNominalInvestment).StringFixed(2),
			toDecimal(vm.ExpectedInterest).StringFixed(2),
			toDecimal(vm.CalculatedFutureValue).StringFixed(2),
			strconv.FormatBool(vm.Achievable),
			toDecimal(vm.Shortfall).StringFixed(2),
			toDecimal(g.ROI).StringFixed(2),
			string(g.ROIClass),
			rule72,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
