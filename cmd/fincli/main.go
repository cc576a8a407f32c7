// Command fincli is the kernel's minimal CLI surface (spec.md §6): import
// a statement, emit a report, or bulk-load a rule set. The engine is the
// point of the exercise; this command is a thin driver over it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/classifier"
	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/database"
	"github.com/finledger/finledger/export"
	"github.com/finledger/finledger/journal"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/parser"
	"github.com/finledger/finledger/posting"
	"github.com/finledger/finledger/reporting"
	"github.com/finledger/finledger/repositories"
	"github.com/finledger/finledger/utils"
)

// Exit codes per spec.md §6 CLI table.
const (
	exitUnbalanced     = 2
	exitUnknownAccount = 3
	exitPeriodClosed   = 4
)

func main() {
	app := &cli.App{
		Name:  "fincli",
		Usage: "bookkeeping kernel command-line driver",
		Commands: []*cli.Command{
			importCommand(),
			reportCommand(),
			rulesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.WithError(err).Error("command failed")
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Unbalanced:
		return exitUnbalanced
	case apperr.UnknownAccount, apperr.InactiveAccount:
		return exitUnknownAccount
	case apperr.PeriodClosed:
		return exitPeriodClosed
	default:
		return 1
	}
}

func setup() (*config.Config, error) {
	cfg := config.Load()
	if _, err := database.Connect(cfg); err != nil {
		return nil, err
	}
	if err := database.Migrate(database.DB); err != nil {
		return nil, err
	}
	return cfg, nil
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "parse a statement, classify, and post it",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "company", Required: true},
			&cli.UintFlag{Name: "period", Required: true},
			&cli.StringFlag{Name: "file", Required: true},
		},
		Action: func(c *cli.Context) error {
			if _, err := setup(); err != nil {
				return err
			}
			return runImport(c.Context, c.Uint("company"), c.Uint("period"), c.String("file"))
		},
	}
}

func runImport(ctx context.Context, companyID, periodID uint, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open statement file: %w", err)
	}
	defer f.Close()

	var period models.FiscalPeriod
	if err := database.DB.First(&period, periodID).Error; err != nil {
		return apperr.Wrap(apperr.PeriodClosed, "fiscal period not found", err)
	}

	accountRepo := repositories.NewAccountRepository(database.DB)
	accounts, err := coa.Load(ctx, accountRepo, companyID)
	if err != nil {
		return err
	}

	var rules []models.TransactionMappingRule
	if err := database.DB.Where("company_id = ?", companyID).Find(&rules).Error; err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	compiledRules, warnings := classifier.Compile(rules)
	for _, w := range warnings {
		utils.WithError(w).Warn("rule load warning")
	}

	p := parser.New(parser.DefaultColumns, period.StartDate)
	txs, err := p.Parse(ctx, f)
	if err != nil {
		return fmt.Errorf("parse statement: %w", err)
	}
	for _, w := range p.Warnings() {
		utils.WithError(w).Warn("parse warning")
	}

	js := journal.NewStore(database.DB)
	accCfg := *config.GetAccountingConfig()
	svc := posting.NewService(js, accounts, accCfg)

	var nextID uint = 1
	var postedCount int
	for _, tx := range txs {
		accountCode, _ := classifier.Classify(tx.Description, compiledRules)
		bankTx := models.BankTransaction{
			ID: nextID, CompanyID: companyID, FiscalPeriodID: periodID,
			Date: tx.Date, Details: tx.Description, Debit: tx.Debit, Credit: tx.Credit,
			RunningBalance: tx.Balance, ServiceFee: tx.ServiceFee,
		}
		nextID++

		if _, err := svc.Post(ctx, period, bankTx, accountCode); err != nil {
			if apperr.KindOf(err) == apperr.PeriodClosed {
				return err // fatal for the whole import
			}
			utils.WithError(err).Warn("skipped transaction")
			continue
		}
		postedCount++
	}

	utils.WithFields(utils.Fields{"posted": postedCount, "total": len(txs)}).Info("import complete")
	return nil
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "emit a named report",
		ArgsUsage: "<kind>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "company", Required: true},
			&cli.UintFlag{Name: "period", Required: true},
			&cli.StringFlag{Name: "format", Value: "text"},
			&cli.StringFlag{Name: "out"},
			&cli.UintFlag{Name: "account"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("report requires exactly one <kind> argument")
			}
			if _, err := setup(); err != nil {
				return err
			}
			return runReport(c.Context, c.Args().First(), c.Uint("company"), c.Uint("period"), c.Uint("account"), c.String("format"), c.String("out"))
		},
	}
}

func runReport(ctx context.Context, kind string, companyID, periodID, accountID uint, format, out string) error {
	accountRepo := repositories.NewAccountRepository(database.DB)
	accounts, err := coa.Load(ctx, accountRepo, companyID)
	if err != nil {
		return err
	}
	js := journal.NewStore(database.DB)

	var company models.Company
	database.DB.First(&company, companyID)
	var period models.FiscalPeriod
	database.DB.First(&period, periodID)
	banner := export.Banner{Company: company.Name, Period: period.Name}

	var report *reporting.Report
	switch kind {
	case "trial-balance":
		report, err = reporting.TrialBalance(ctx, js, accounts, companyID, periodID)
	case "general-ledger":
		report, err = reporting.GeneralLedger(ctx, js, accounts, companyID, periodID, accountID)
	case "cashbook":
		report, err = reporting.Cashbook(ctx, js, accounts, companyID, periodID)
	case "income-statement":
		report, err = reporting.IncomeStatement(ctx, js, accounts, companyID, periodID)
	case "balance-sheet":
		var is *reporting.Report
		is, err = reporting.IncomeStatement(ctx, js, accounts, companyID, periodID)
		if err != nil {
			return err
		}
		netProfit, _ := is.Rows[len(is.Rows)-1]["amount"].(money.Amount)
		report, err = reporting.BalanceSheet(ctx, js, accounts, companyID, periodID, netProfit)
	case "audit-trail":
		report, _, err = reporting.AuditTrail(ctx, js, accounts, companyID, periodID, journal.PageFilters{}, 1, 100)
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
	if err != nil {
		return err
	}

	cfg := config.Load()
	fmtCfg := money.FormatConfig{
		Symbol:            cfg.ReportCurrencySymbol,
		DecimalSeparator:  cfg.ReportDecimalSep,
		ThousandSeparator: cfg.ReportThousandSep,
	}

	var data []byte
	switch format {
	case "csv":
		data, err = export.CSV(report)
	case "xlsx":
		data, err = export.XLSX(report, banner)
	case "pdf":
		data, err = export.PDF(report, banner, fmtCfg)
	default:
		data = export.Text(report, banner, fmtCfg)
	}
	if err != nil {
		return err
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "manage classification rules",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "replace the rule set from a CSV file",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "company", Required: true},
					&cli.StringFlag{Name: "file", Required: true},
				},
				Action: func(c *cli.Context) error {
					if _, err := setup(); err != nil {
						return err
					}
					return runRulesImport(c.Uint("company"), c.String("file"))
				},
			},
		},
	}
}

func runRulesImport(companyID uint, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	rules, err := classifier.LoadRulesCSV(f, companyID)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).Delete(&models.TransactionMappingRule{}).Error; err != nil {
			return fmt.Errorf("clear existing rules: %w", err)
		}
		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return fmt.Errorf("insert rules: %w", err)
			}
		}
		utils.WithFields(utils.Fields{"company": companyID, "count": len(rules)}).Info("rules imported")
		return nil
	})
}
