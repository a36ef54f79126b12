// Package ledger derives the inflow/outflow summary shown above the
// transaction history. Amounts are integer cents throughout; formatting
// happens only at the rendering edge.
package ledger

import (
	"fmt"
	"strings"

	"akiba/internal/api"
)

// Summary aggregates a transaction list into the figures the history view
// displays. Net is inflow minus outflow and may be negative.
type Summary struct {
	InflowCents  int64
	OutflowCents int64
	NetCents     int64
	Count        int
	ByType       map[api.TransactionType]int
}

// inflow reports whether a movement adds to the member's balance.
func inflow(t api.TransactionType) bool {
	switch t {
	case api.TxDeposit, api.TxContribution, api.TxLoanDisbursement, api.TxInterest:
		return true
	case api.TxWithdrawal, api.TxLoanRepayment, api.TxPenalty:
		return false
	}
	// Unknown types count as outflow so the net never overstates savings.
	return false
}

// Summarize partitions transactions into inflow and outflow totals.
func Summarize(transactions []api.Transaction) Summary {
	s := Summary{ByType: make(map[api.TransactionType]int)}

	for _, tx := range transactions {
		s.Count++
		s.ByType[tx.Type]++
		if inflow(tx.Type) {
			s.InflowCents += tx.AmountCents
		} else {
			s.OutflowCents += tx.AmountCents
		}
	}

	s.NetCents = s.InflowCents - s.OutflowCents
	return s
}

// FormatAmount renders cents as "KES 1,234.56". Negative amounts keep the
// sign ahead of the currency value.
func FormatAmount(cents int64, currency string) string {
	if currency == "" {
		currency = "KES"
	}

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	return fmt.Sprintf("%s%s %s.%02d", sign, currency, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
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
