package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"retirement-planner/internal/model"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	accentColor  = color.New(color.FgCyan)
)

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
	fmt.Fprintln(w)
}

func printLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	_, _ = valueColor.Fprintln(w, value)
}

func printResponse(w io.Writer, resp *model.CalculationResponse) {
	if resp.CalculationResult == nil || resp.Display == nil {
		return
	}
	printResult(w, resp.CalculationResult, resp.Display)
	for _, m := range resp.Messages {
		if m.Level == model.LevelWarning {
			_, _ = warningColor.Fprintf(w, "⚠ %s\n", m.Message)
		}
	}
}

// printResult renders the result screen: headline amounts, the savings
// schedule and the three alternatives.
func printResult(w io.Writer, res *model.CalculationResult, d *model.Display) {
	printSection(w, "은퇴 자금 분석")
	printLabelValue(w, "목표 금액", d.GoalAmount)
	printLabelValue(w, "예상 금액", d.EstimatedAmount)
	printLabelValue(w, "부족 금액", d.ShortfallAmount)
	printLabelValue(w, "달성률", fmt.Sprintf("%d%%", d.ProgressPercent))

	if res.Solutions.NoActionNeeded {
		fmt.Fprintln(w)
		_, _ = successColor.Fprintln(w, "✓ 지금 모은 돈으로 은퇴 목표를 달성할 수 있어요")
		return
	}

	printSection(w, fmt.Sprintf("매년 %s씩 늘려 저축하면 %d년에 목표 달성", percent(res.EscalationRatePct/100), res.TargetYear))
	for _, row := range d.AnnualSavings {
		_, _ = labelColor.Fprintf(w, "  %s  ", row.Year)
		_, _ = valueColor.Fprint(w, row.Amount)
		if row.Badge != "" {
			_, _ = accentColor.Fprintf(w, "  %s", row.Badge)
		}
		fmt.Fprintln(w)
	}

	sol := res.Solutions
	printSection(w, "다른 방법")
	printLever(w, "투자 수익률", sol.InvestmentReturn.Feasible,
		fmt.Sprintf("%s → %s", percent(sol.InvestmentReturn.From/100), percent(sol.InvestmentReturn.To/100)))
	printLever(w, "매월 추가 저축", sol.MonthlySaving.Feasible, d.MonthlySaving)
	printLever(w, "은퇴 나이", sol.RetirementAge.Feasible,
		fmt.Sprintf("%g세 → %g세", sol.RetirementAge.From, sol.RetirementAge.To))
}

func printLever(w io.Writer, label string, feasible bool, value string) {
	if !feasible {
		printLabelValue(w, label, "불가능")
		return
	}
	printLabelValue(w, label, value)
}

func printMessages(w io.Writer, msgs []model.CalculationMessage) {
	for _, m := range msgs {
		if m.Level != model.LevelCritical {
			continue
		}
		if m.Field != "" {
			_, _ = errorColor.Fprintf(w, "✗ %s: %s\n", m.Field, m.Message)
			continue
		}
		_, _ = errorColor.Fprintf(w, "✗ %s\n", m.Message)
	}
}

func printError(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "✗ %v\n", err)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Fprint(w, "  ")
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		_, _ = headerColor.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "  ")
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprint(w, "  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			_, _ = valueColor.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}

// percent formats a fraction as a trimmed percentage, 0.035 -> "3.5%".
func percent(v float64) string {
	pct := strconv.FormatFloat(v*100, 'f', 2, 64)
	pct = strings.TrimRight(strings.TrimRight(pct, "0"), ".")
	return pct + "%"
}
