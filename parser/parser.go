// Package parser implements the Statement Parser component (spec.md §4.D):
// a small state machine that turns the primary bank's tabular text export
// into a sequence of ParsedTransaction values. Parsing is strictly
// sequential within one statement, since continuation lines carry meaning
// only in relation to the transaction head that precedes them.
package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/money"
)

// Column byte offsets, per spec.md §4.D. These are the defaults; a per-file
// calibration step may shift them by a small delta (see Shift).
type Columns struct {
	DetailsStart, DetailsEnd     int
	FeeMarkerStart, FeeMarkerEnd int
	DebitStart, DebitEnd         int
	CreditStart, CreditEnd       int
	DateStart, DateEnd           int
	BalanceStart                int
}

// DefaultColumns is the nominal column geometry for the primary bank's
// export format.
var DefaultColumns = Columns{
	DetailsStart: 0, DetailsEnd: 78,
	FeeMarkerStart: 50, FeeMarkerEnd: 78,
	DebitStart: 78, DebitEnd: 100,
	CreditStart: 99, CreditEnd: 110,
	DateStart: 110, DateEnd: 120,
	BalanceStart: 120,
}

// Shift adjusts every column boundary by delta, implementing the
// per-file calibration step spec.md §4.D allows for.
func (c Columns) Shift(delta int) Columns {
	return Columns{
		DetailsStart: c.DetailsStart + delta, DetailsEnd: c.DetailsEnd + delta,
		FeeMarkerStart: c.FeeMarkerStart + delta, FeeMarkerEnd: c.FeeMarkerEnd + delta,
		DebitStart: c.DebitStart + delta, DebitEnd: c.DebitEnd + delta,
		CreditStart: c.CreditStart + delta, CreditEnd: c.CreditEnd + delta,
		DateStart: c.DateStart + delta, DateEnd: c.DateEnd + delta,
		BalanceStart: c.BalanceStart + delta,
	}
}

// ParsedTransaction is one transaction recovered from a statement.
type ParsedTransaction struct {
	Description string
	Debit       money.Amount
	Credit      money.Amount
	Date        time.Time
	Reference   string
	Balance     money.Amount
	ServiceFee  bool
}

// TransactionType reports "D" for a debit transaction and "C" for a credit
// one, matching the Posting Service's shape selection (spec.md §4.F).
func (t ParsedTransaction) TransactionType() string {
	if t.Debit.IsPositive() {
		return "D"
	}
	return "C"
}

var (
	dateColumnRe = regexp.MustCompile(`(\d\d)\s+(\d\d)`)
	amountRe     = regexp.MustCompile(`([\d,]+\.\d{2})-?`)
	skipWords    = regexp.MustCompile(`(?i)details|service|fee|debits|credits|date|balance|page|statement no|vat reg|month-end balance`)
)

// state is the parser's two-state machine (spec.md §9 Design Notes).
type state int

const (
	idle state = iota
	holdingHead
)

// Parser runs the column-geometry state machine over a line stream.
type Parser struct {
	cols        Columns
	nominalDate time.Time

	state       state
	pending     ParsedTransaction
	descLines   []string

	warnings []error
}

// New builds a Parser. nominalDate is the statement's own date ("S" in
// spec.md §4.D), used for year resolution on parsed MM/DD pairs.
func New(cols Columns, nominalDate time.Time) *Parser {
	return &Parser{cols: cols, nominalDate: nominalDate}
}

// Warnings returns the ParseNoAmount/ParseMalformedDate warnings
// accumulated so far; these are non-fatal per spec.md §7.
func (p *Parser) Warnings() []error { return p.warnings }

// Parse reads lines from r and returns the resulting transaction sequence.
// Parsing stops early if ctx is cancelled between lines (spec.md §5).
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]ParsedTransaction, error) {
	var out []ParsedTransaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 4096)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		line := scanner.Text()
		if tx, ok := p.feed(line); ok {
			out = append(out, tx)
		}
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("read statement: %w", err)
	}
	if tx, ok := p.flush(); ok {
		out = append(out, tx)
	}
	return out, nil
}

func column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) || end < 0 {
		end = len(line)
	}
	if start < 0 {
		start = 0
	}
	return line[start:end]
}

// feed processes one line, returning a completed transaction if this line's
// head closes off a previously pending one.
func (p *Parser) feed(line string) (ParsedTransaction, bool) {
	if strings.TrimSpace(line) == "" {
		return ParsedTransaction{}, false
	}
	if skipWords.MatchString(line) {
		return ParsedTransaction{}, false
	}

	dateCol := column(line, p.cols.DateStart, p.cols.DateEnd)
	m := dateColumnRe.FindStringSubmatch(dateCol)

	if m == nil {
		// Not a transaction head; if we're mid-transaction it's a
		// description continuation, otherwise it's noise.
		if p.state == holdingHead {
			p.descLines = append(p.descLines, strings.TrimSpace(line))
		}
		return ParsedTransaction{}, false
	}

	var completed ParsedTransaction
	var hadPending bool
	if p.state == holdingHead {
		completed, hadPending = p.finishPending()
	}

	p.startHead(line, m)

	if hadPending {
		return completed, true
	}
	return ParsedTransaction{}, false
}

// flush closes off any transaction still pending at end-of-input.
func (p *Parser) flush() (ParsedTransaction, bool) {
	if p.state != holdingHead {
		return ParsedTransaction{}, false
	}
	return p.finishPending()
}

func (p *Parser) startHead(line string, dateMatch []string) {
	details := strings.TrimSpace(column(line, p.cols.DetailsStart, p.cols.DetailsEnd))
	feeCol := column(line, p.cols.FeeMarkerStart, p.cols.FeeMarkerEnd)
	debitCol := column(line, p.cols.DebitStart, p.cols.DebitEnd)
	creditCol := column(line, p.cols.CreditStart, p.cols.CreditEnd)
	balanceCol := column(line, p.cols.BalanceStart, len(line))

	debit, hasDebit := extractAmount(debitCol)
	credit, hasCredit := extractAmount(creditCol)
	balance, _ := extractAmount(balanceCol)

	if !hasDebit && !hasCredit {
		p.warnings = append(p.warnings, apperr.New(apperr.ParseNoAmount, fmt.Sprintf("no amount on line: %q", line)))
		p.state = idle
		return
	}

	date, err := p.resolveDate(dateMatch)
	if err != nil {
		p.warnings = append(p.warnings, err)
		p.state = idle
		return
	}

	p.pending = ParsedTransaction{
		Description: details,
		Debit:       debit,
		Credit:      credit,
		Date:        date,
		Balance:     balance,
		ServiceFee:  strings.Contains(feeCol, "##"),
	}
	p.descLines = nil
	p.state = holdingHead
}

func (p *Parser) finishPending() (ParsedTransaction, bool) {
	tx := p.pending
	if len(p.descLines) > 0 {
		parts := append([]string{tx.Description}, p.descLines...)
		tx.Description = strings.Join(trimAll(parts), " ")
	}
	p.pending = ParsedTransaction{}
	p.descLines = nil
	p.state = idle
	return tx, true
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func extractAmount(col string) (money.Amount, bool) {
	m := amountRe.FindString(col)
	if m == "" {
		return money.Zero, false
	}
	cleaned := strings.TrimSuffix(m, "-")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	amt, err := money.New(cleaned)
	if err != nil {
		return money.Zero, false
	}
	return amt, true
}

// resolveDate applies the six-month year-resolution heuristic of spec.md
// §4.D to an "MM DD" match against the parser's nominal statement date.
func (p *Parser) resolveDate(m []string) (time.Time, error) {
	mm, err1 := strconv.Atoi(m[1])
	dd, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || mm < 1 || mm > 12 || dd < 1 || dd > 31 {
		return time.Time{}, apperr.New(apperr.ParseMalformedDate, fmt.Sprintf("malformed date columns: %q", m[0]))
	}

	year := p.nominalDate.Year()
	candidate := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)

	diff := candidate.Sub(p.nominalDate)
	const sixMonths = 183 * 24 * time.Hour
	if diff > sixMonths {
		candidate = time.Date(year-1, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	} else if diff < -sixMonths {
		candidate = time.Date(year+1, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	}
	return candidate, nil
}
