package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/journal"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/utils"
)

// accountActivity accumulates period debit/credit totals for one account,
// preserving line order for General Ledger running balances.
type accountActivity struct {
	account models.Account
	debit   money.Amount
	credit  money.Amount
	lines   []lineEntry
}

type lineEntry struct {
	entryDate   string
	entryID     uint
	reference   string
	description string
	debit       money.Amount
	credit      money.Amount
}

// collect loads every entry in period and groups its lines by account,
// checking ctx between entries so reporting is cancellable (spec.md §5).
func collect(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint) (map[uint]*accountActivity, error) {
	start := time.Now()
	entries, err := js.EntriesInPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[uint]*accountActivity)
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for _, l := range e.Lines {
			acc, err := accounts.ByID(l.AccountID)
			if err != nil {
				continue // account deleted since posting; skip rather than abort the report
			}
			activity, ok := byAccount[l.AccountID]
			if !ok {
				activity = &accountActivity{account: acc}
				byAccount[l.AccountID] = activity
			}
			activity.debit = activity.debit.Add(l.Debit)
			activity.credit = activity.credit.Add(l.Credit)
			activity.lines = append(activity.lines, lineEntry{
				entryDate:   e.Date.Format("2006-01-02"),
				entryID:     e.ID,
				reference:   e.Reference,
				description: l.Description,
				debit:       l.Debit,
				credit:      l.Credit,
			})
		}
	}

	utils.Performance("reporting.collect", time.Since(start), utils.Fields{
		"company_id": companyID,
		"period_id":  periodID,
		"entries":    len(entries),
	})
	return byAccount, nil
}

func sortedAccountIDs(byAccount map[uint]*accountActivity) []uint {
	ids := make([]uint, 0, len(byAccount))
	for id := range byAccount {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return byAccount[ids[i]].account.Code < byAccount[ids[j]].account.Code })
	return ids
}

// TrialBalance computes the period's trial balance (spec.md §4.G).
func TrialBalance(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint) (*Report, error) {
	byAccount, err := collect(ctx, js, accounts, companyID, periodID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title: "Trial Balance",
		Columns: []Column{
			{Header: "Code", Key: "code", Width: 10, Type: ColumnText, Align: AlignLeft},
			{Header: "Account", Key: "name", Width: 30, Type: ColumnText, Align: AlignLeft},
			{Header: "Debit", Key: "debit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Credit", Key: "credit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	var totalDebit, totalCredit money.Amount
	for _, id := range sortedAccountIDs(byAccount) {
		a := byAccount[id]
		net := a.debit.Sub(a.credit)
		var debitCol, creditCol money.Amount
		if a.account.NormalBalance() == models.Debit {
			if !net.IsNegative() {
				debitCol = net
			} else {
				creditCol = net.Abs()
			}
		} else {
			net = a.credit.Sub(a.debit)
			if !net.IsNegative() {
				creditCol = net
			} else {
				debitCol = net.Abs()
			}
		}
		totalDebit = totalDebit.Add(debitCol)
		totalCredit = totalCredit.Add(creditCol)

		report.Rows = append(report.Rows, Row{
			"code": a.account.Code, "name": a.account.Name,
			"debit": debitCol, "credit": creditCol,
		})
	}

	if totalDebit.Cmp(totalCredit) != 0 {
		return nil, apperr.New(apperr.TrialBalanceUnbalanced, fmt.Sprintf("debit total %s != credit total %s", totalDebit, totalCredit))
	}
	report.Rows = append(report.Rows, Row{"code": "", "name": "TOTAL", "debit": totalDebit, "credit": totalCredit})
	return report, nil
}

// GeneralLedger emits chronological lines with a running balance for one
// account (spec.md §4.G).
func GeneralLedger(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID, accountID uint) (*Report, error) {
	acc, err := accounts.ByID(accountID)
	if err != nil {
		return nil, err
	}
	lines, err := js.LinesForAccount(ctx, companyID, periodID, accountID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title: fmt.Sprintf("General Ledger - %s %s", acc.Code, acc.Name),
		Columns: []Column{
			{Header: "Date", Key: "date", Width: 12, Type: ColumnDate, Align: AlignLeft},
			{Header: "Reference", Key: "reference", Width: 12, Type: ColumnText, Align: AlignLeft},
			{Header: "Description", Key: "description", Width: 40, Type: ColumnText, Align: AlignLeft},
			{Header: "Debit", Key: "debit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Credit", Key: "credit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Balance", Key: "balance", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	running := money.Zero
	for _, l := range lines {
		running = running.Add(l.Debit).Sub(l.Credit)
		report.Rows = append(report.Rows, Row{
			"date": l.EntryDate, "reference": l.EntryReference, "description": l.Description,
			"debit": l.Debit, "credit": l.Credit, "balance": running,
		})
	}
	return report, nil
}

// Cashbook is the General Ledger restricted to cash/bank family accounts
// (code prefix "1"), with Debit/Credit relabelled Receipts/Payments
// (spec.md §4.G).
func Cashbook(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint) (*Report, error) {
	byAccount, err := collect(ctx, js, accounts, companyID, periodID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title: "Cashbook",
		Columns: []Column{
			{Header: "Date", Key: "date", Width: 12, Type: ColumnDate, Align: AlignLeft},
			{Header: "Account", Key: "account", Width: 20, Type: ColumnText, Align: AlignLeft},
			{Header: "Description", Key: "description", Width: 40, Type: ColumnText, Align: AlignLeft},
			{Header: "Receipts", Key: "receipts", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Payments", Key: "payments", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Balance", Key: "balance", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	for _, id := range sortedAccountIDs(byAccount) {
		a := byAccount[id]
		if !strings.HasPrefix(a.account.Code, "1") {
			continue
		}
		running := money.Zero
		for _, l := range a.lines {
			running = running.Add(l.debit).Sub(l.credit)
			report.Rows = append(report.Rows, Row{
				"date": l.entryDate, "account": a.account.Name, "description": l.description,
				"receipts": l.debit, "payments": l.credit, "balance": running,
			})
		}
	}
	return report, nil
}

// IncomeStatement splits period activity into Revenue (code prefix "4")
// and Expenses (code prefix "5") sections, presenting revenue as its
// credit-side positive magnitude (spec.md §4.G).
func IncomeStatement(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint) (*Report, error) {
	byAccount, err := collect(ctx, js, accounts, companyID, periodID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title: "Income Statement",
		Columns: []Column{
			{Header: "Section", Key: "section", Width: 12, Type: ColumnText, Align: AlignLeft},
			{Header: "Code", Key: "code", Width: 10, Type: ColumnText, Align: AlignLeft},
			{Header: "Account", Key: "name", Width: 30, Type: ColumnText, Align: AlignLeft},
			{Header: "Amount", Key: "amount", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	var totalRevenue, totalExpense money.Amount
	for _, id := range sortedAccountIDs(byAccount) {
		a := byAccount[id]
		switch {
		case strings.HasPrefix(a.account.Code, "4"):
			amount := a.credit.Sub(a.debit)
			totalRevenue = totalRevenue.Add(amount)
			report.Rows = append(report.Rows, Row{"section": "Revenue", "code": a.account.Code, "name": a.account.Name, "amount": amount})
		case strings.HasPrefix(a.account.Code, "5"):
			amount := a.debit.Sub(a.credit)
			totalExpense = totalExpense.Add(amount)
			report.Rows = append(report.Rows, Row{"section": "Expenses", "code": a.account.Code, "name": a.account.Name, "amount": amount})
		}
	}

	netProfit := totalRevenue.Sub(totalExpense)
	report.Rows = append(report.Rows, Row{"section": "Revenue", "code": "", "name": "Total Revenue", "amount": totalRevenue})
	report.Rows = append(report.Rows, Row{"section": "Expenses", "code": "", "name": "Total Expenses", "amount": totalExpense})
	report.Rows = append(report.Rows, Row{"section": "", "code": "", "name": "Net Profit", "amount": netProfit})
	return report, nil
}

// BalanceSheet splits each account's net activity for the period (no
// opening balance is carried in) into Assets ("1"), Liabilities ("2"), and
// Equity ("3") sections (spec.md §4.G).
func BalanceSheet(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint, periodNetProfit money.Amount) (*Report, error) {
	byAccount, err := collect(ctx, js, accounts, companyID, periodID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title: "Balance Sheet",
		Columns: []Column{
			{Header: "Section", Key: "section", Width: 12, Type: ColumnText, Align: AlignLeft},
			{Header: "Code", Key: "code", Width: 10, Type: ColumnText, Align: AlignLeft},
			{Header: "Account", Key: "name", Width: 30, Type: ColumnText, Align: AlignLeft},
			{Header: "Balance", Key: "balance", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	var totalAssets, totalLiabilities, totalEquity money.Amount
	for _, id := range sortedAccountIDs(byAccount) {
		a := byAccount[id]
		net := a.debit.Sub(a.credit)
		switch {
		case strings.HasPrefix(a.account.Code, "1"):
			totalAssets = totalAssets.Add(net)
			report.Rows = append(report.Rows, Row{"section": "Assets", "code": a.account.Code, "name": a.account.Name, "balance": net})
		case strings.HasPrefix(a.account.Code, "2"):
			liabBalance := net.Neg()
			totalLiabilities = totalLiabilities.Add(liabBalance)
			report.Rows = append(report.Rows, Row{"section": "Liabilities", "code": a.account.Code, "name": a.account.Name, "balance": liabBalance})
		case strings.HasPrefix(a.account.Code, "3"):
			eqBalance := net.Neg()
			totalEquity = totalEquity.Add(eqBalance)
			report.Rows = append(report.Rows, Row{"section": "Equity", "code": a.account.Code, "name": a.account.Name, "balance": eqBalance})
		}
	}

	report.Rows = append(report.Rows, Row{"section": "Assets", "code": "", "name": "Total Assets", "balance": totalAssets})
	report.Rows = append(report.Rows, Row{"section": "Liabilities", "code": "", "name": "Total Liabilities", "balance": totalLiabilities})
	report.Rows = append(report.Rows, Row{"section": "Equity", "code": "", "name": "Total Equity", "balance": totalEquity})

	expected := totalLiabilities.Add(totalEquity).Add(periodNetProfit)
	if totalAssets.Sub(expected).Abs().Cmp(money.MustNew("0.01")) > 0 {
		return nil, apperr.New(apperr.TrialBalanceUnbalanced, fmt.Sprintf("assets %s != liabilities+equity+netProfit %s", totalAssets, expected))
	}
	return report, nil
}

// AuditTrail returns a paginated listing of journal entries with their
// lines, filtered per spec.md §4.G.
func AuditTrail(ctx context.Context, js *journal.Store, accounts *coa.Store, companyID, periodID uint, filters journal.PageFilters, page, size int) (*Report, int64, error) {
	entries, total, err := js.EntriesPaged(ctx, companyID, periodID, filters, page, size)
	if err != nil {
		return nil, 0, err
	}

	report := &Report{
		Title: "Audit Trail",
		Columns: []Column{
			{Header: "Date", Key: "date", Width: 12, Type: ColumnDate, Align: AlignLeft},
			{Header: "Reference", Key: "reference", Width: 12, Type: ColumnText, Align: AlignLeft},
			{Header: "Description", Key: "entry_description", Width: 30, Type: ColumnText, Align: AlignLeft},
			{Header: "Line", Key: "line_number", Width: 4, Type: ColumnText, Align: AlignRight},
			{Header: "Code", Key: "code", Width: 10, Type: ColumnText, Align: AlignLeft},
			{Header: "Account", Key: "account_name", Width: 25, Type: ColumnText, Align: AlignLeft},
			{Header: "Line Description", Key: "line_description", Width: 30, Type: ColumnText, Align: AlignLeft},
			{Header: "Debit", Key: "debit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
			{Header: "Credit", Key: "credit", Width: 15, Type: ColumnCurrency, Align: AlignRight},
		},
	}

	for _, e := range entries {
		lines := append([]models.JournalEntryLine(nil), e.Lines...)
		sort.Slice(lines, func(i, j int) bool { return lines[i].LineNumber < lines[j].LineNumber })
		for _, l := range lines {
			acc, err := accounts.ByID(l.AccountID)
			code, name := "", ""
			if err == nil {
				code, name = acc.Code, acc.Name
			}
			report.Rows = append(report.Rows, Row{
				"date": e.Date.Format("2006-01-02"), "reference": e.Reference, "entry_description": e.Description,
				"line_number": l.LineNumber, "code": code, "account_name": name,
				"line_description": l.Description, "debit": l.Debit, "credit": l.Credit,
			})
		}
	}

	utils.Audit("reporting.audit_trail", "fiscal_period", periodID, utils.Fields{
		"company_id": companyID,
		"page":       page,
		"size":       size,
		"matched":    total,
	})
	return report, total, nil
}
