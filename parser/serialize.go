package parser

import (
	"fmt"
	"strings"
)

// Serialize renders transactions back into the same column-geometry text
// format Parse consumes, so that parse -> Serialize -> parse is the
// identity on the transaction sequence (spec.md §8, parser idempotence).
func Serialize(cols Columns, nominalYear int, txs []ParsedTransaction) string {
	var b strings.Builder
	for _, tx := range txs {
		b.WriteString(serializeLine(cols, tx))
		b.WriteByte('\n')
	}
	return b.String()
}

func serializeLine(cols Columns, tx ParsedTransaction) string {
	width := cols.BalanceStart + 20
	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}

	place := func(s string, start int) {
		for i := 0; i < len(s) && start+i < len(line); i++ {
			line[start+i] = s[i]
		}
	}

	details := tx.Description
	if tx.ServiceFee && len(details) < cols.FeeMarkerEnd-cols.FeeMarkerStart {
		// leave room for the "##" marker written separately below
	}
	place(details, cols.DetailsStart)

	if tx.ServiceFee {
		place("##", cols.FeeMarkerStart)
	}

	if tx.Debit.IsPositive() {
		place(tx.Debit.String(), cols.DebitStart)
	}
	if tx.Credit.IsPositive() {
		place(tx.Credit.String(), cols.CreditStart)
	}

	place(fmt.Sprintf("%02d %02d", int(tx.Date.Month()), tx.Date.Day()), cols.DateStart)
	place(tx.Balance.String(), cols.BalanceStart)

	return strings.TrimRight(string(line), " ")
}
