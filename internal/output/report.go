package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount
var CurrencySymbol = "₪"

// GenerateReport renders report in the named format to w
func GenerateReport(w io.Writer, report *domain.PlanReport, format string) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// JSONFormatter renders the plan report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	data, err := gojson.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

func toDecimal(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}

// FormatCurrency formats an amount with two decimals and thousands separators
func FormatCurrency(amount float64) string {
	return formatMoney(toDecimal(amount).StringFixed(2))
}

// FormatWhole formats an amount rounded to whole units
func FormatWhole(amount float64) string {
	return formatMoney(toDecimal(amount).StringFixed(0))
}

func formatMoney(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i:]
	}
	return sign + CurrencySymbol + groupThousands(intPart) + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercentage formats a percentage value with two decimals
func FormatPercentage(pct float64) string {
	return toDecimal(pct).StringFixed(2) + "%"
}

// FormatRate formats a monthly rate fraction as a percentage with four decimals
func FormatRate(monthly float64) string {
	return toDecimal(monthly*100).StringFixed(4) + "%"
}

// FormatMonths renders a month count as "N months (Yy Mm)"
func FormatMonths(months int) string {
	if months < 12 {
		return fmt.Sprintf("%d months", months)
	}
	return fmt.Sprintf("%d months (%dy %dm)", months, months/12, months%12)
}

// FormatMonthsDelta renders a signed change in months
func FormatMonthsDelta(delta int) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("+%d months", delta)
	case delta < 0:
		return fmt.Sprintf("%d months", delta)
	default:
		return "no change"
	}
}
