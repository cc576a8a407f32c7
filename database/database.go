// Package database opens the GORM connection and runs schema migration
// for the nine persisted tables: companies, fiscal_periods,
// account_categories, accounts, transaction_mapping_rules, source_files,
// bank_transactions, journal_entries and journal_entry_lines.
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/utils"
)

// DB is the process-wide database handle, set by Connect.
var DB *gorm.DB

// Connect opens a GORM connection using cfg.DatabaseDriver/DatabaseDSN and
// stores it in DB.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database (%s): %w", cfg.DatabaseDriver, err)
	}

	utils.WithFields(utils.Fields{"driver": cfg.DatabaseDriver}).Info("database connection established")
	DB = db
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate runs AutoMigrate over every persisted entity (spec.md "Persisted
// state layout"). The journal_entries unique (company_id, reference)
// index and the two declared relations (accounts -> account_categories,
// journal_entry_lines -> journal_entries) are expressed via struct tags on
// the models themselves; the other *ID columns carry no foreign-key
// constraint.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Company{},
		&models.FiscalPeriod{},
		&models.AccountCategory{},
		&models.Account{},
		&models.TransactionMappingRule{},
		&models.SourceFile{},
		&models.BankTransaction{},
		&models.JournalEntry{},
		&models.JournalEntryLine{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate schema: %w", err)
	}
	return nil
}
