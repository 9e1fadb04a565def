package gemini

import (
	"fmt"
	"strings"

	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
)

func estimateInstruction(in EstimateInput) string {
	brandContext := "Generic new client."
	if in.Brand != nil {
		brandContext = fmt.Sprintf("Estimating for %s. Billing model: %s.", in.Brand.Name, in.Brand.BillingModel)
		if in.Brand.RetainerScopeLimit != nil && *in.Brand.RetainerScopeLimit != "" {
			brandContext += fmt.Sprintf(" Retainer scope: %s.", *in.Brand.RetainerScopeLimit)
		}
	}

	philosophy := ""
	if in.Settings != nil {
		philosophy = in.Settings.Philosophy
	}

	return strings.Join([]string{
		fmt.Sprintf("You are an agency pricing consultant. Region: %s.", in.Region),
		"BRAND CONTEXT: " + brandContext,
		"RATES: " + utils.CompactJSON(in.Rates),
		"PHILOSOPHY: " + philosophy,
		"Map every point of the scope to a service from RATES, explain each mapping and recommend one of the tiers Maintenance, Growth or Partner.",
	}, "\n")
}

func workLogInstruction(in WorkLogInput) string {
	return fmt.Sprintf(`You are an agency audit expert. The user pasted a table or narrative of work delivered to the brand %[1]s.

PERIOD:
- The data covers %[2]d month(s). Scale volume expectations to that span: 50 reels over 5 months fits a 10 reels/month retainer.

SOURCE DATA IS THE TRUTH:
- Treat every price in the input as what was actually billed.
- When the input is a tab or space separated table, map each row to exactly one deliverable.

SYSTEM RATES (reference only):
%[3]s

RULES:
1. "service" is the task name, with "quantity" and "unit" taken from the row.
2. "suggestedRate" is the closest match in SYSTEM RATES, even when the sheet charged less.
3. "total" is the price from the sheet (quantity x price actually charged).
4. "totalSheetRevenue" is the sum of the price column.
5. "totalMarketValue" is the sum of quantity x suggestedRate.
6. "health" is "Loss" when totalSheetRevenue < totalMarketValue, otherwise "Healthy".
7. "aiInsight" names where money is being lost against the standards and mentions the %[2]d-month span.`,
		in.Brand.Name, in.PeriodMonths, utils.CompactJSON(in.Rates))
}

const invoiceInstruction = "Extract standard service rates from the invoice. Generalize item names (drop dates, week numbers and one-off labels) and detect the currency."

func estimatePrompt(scope string) string {
	return "Scope: " + scope
}

func workLogPrompt(input string) string {
	return "Work history data:\n" + input
}

func invoicePrompt(text string) string {
	return "Invoice: " + text
}
