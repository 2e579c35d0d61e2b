package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ModulasKhwaait/moneyMatters/internal/config"
	"github.com/ModulasKhwaait/moneyMatters/internal/csvimporter"
	"github.com/ModulasKhwaait/moneyMatters/internal/financedb"
	"github.com/ModulasKhwaait/moneyMatters/internal/influxhelper"
	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
	"github.com/robfig/cron"
)

const configEnvVar = "MONEYMATTERS_CONFIG"

func main() {
	singleRun := flag.Bool("single-run", false, "run the task once (disable cron)")
	configFile := flag.String("config", "./config.yml", "configuration file")
	secretsFile := flag.String("secrets", "./secrets.json", "secrets file")
	help := flag.Bool("help", false, "show command help")

	flag.Parse()

	if *help {
		fmt.Println("moneyMatters - transaction importer")
		fmt.Println("moneyMatters [options] task [args]")
		fmt.Println("tasks: import FILE [ACCOUNT_NAME] | import-dir | summary [ACCOUNT_NAME] | transactions [LIMIT] | account NAME TYPE INSTITUTION")
		flag.PrintDefaults()
		return
	}

	err := config.ReadConfig(configEnvVar, *configFile, *secretsFile)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("No task passed in")
		os.Exit(1)
	}

	if err := run(args[0], args[1:], *singleRun); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(task string, args []string, singleRun bool) error {
	db, err := financedb.Open(config.CurrentSQLConfig().DatabasePath, config.CurrentSecrets().DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	manager, err := newImportManager(db)
	if err != nil {
		return err
	}

	switch task {
	case "import":
		if len(args) == 0 {
			return fmt.Errorf("import requires a csv file")
		}
		accountName := ""
		if len(args) > 1 {
			accountName = args[1]
		}
		return runImport(manager, args[0], accountName)
	case "import-dir":
		if err := runImportDir(manager); err != nil {
			return err
		}
		if singleRun || config.CurrentConfig().UpdateFrequency == "" {
			return nil
		}
		// re-imports are idempotent by natural key, so a recurring scan
		// of the raw directory is safe
		c := cron.New()
		err := c.AddFunc(config.CurrentConfig().UpdateFrequency, func() {
			fmt.Println(time.Now().Format(time.RFC850))
			if err := runImportDir(manager); err != nil {
				fmt.Println(err)
			}
		})
		if err != nil {
			return err
		}
		c.Start()
		select {}
	case "summary":
		accountName := ""
		if len(args) > 0 {
			accountName = args[0]
		}
		return runSummary(db, accountName)
	case "transactions":
		limit := 10
		if len(args) > 0 {
			limit, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid limit %q", args[0])
			}
		}
		return runTransactions(db, limit)
	case "account":
		if len(args) < 3 {
			return fmt.Errorf("account requires NAME TYPE INSTITUTION")
		}
		id, err := db.EnsureAccount(context.Background(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Account %s has id %d\n", args[0], id)
		return nil
	default:
		return fmt.Errorf("unknown task %q", task)
	}
}

func newImportManager(db *financedb.DB) (*financialimporter.ImportManager, error) {
	csvConfig := config.CurrentCSVConfig()

	var importAfter time.Time
	if csvConfig.ImportAfterDate != "" {
		var err error
		importAfter, err = time.Parse("2006-01-02", csvConfig.ImportAfterDate)
		if err != nil {
			return nil, fmt.Errorf("invalid importAfterDate %q: %w", csvConfig.ImportAfterDate, err)
		}
	}

	chase := csvimporter.NewChaseImporter(db, importAfter)
	return financialimporter.NewImportManager(chase), nil
}

func runImport(manager *financialimporter.ImportManager, path, accountName string) error {
	result, err := manager.ImportFile(path, config.CurrentCSVConfig().Institution, accountName)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d transactions from %s (%d duplicates skipped)\n", result.Inserted, path, result.Skipped)
	return nil
}

func runImportDir(manager *financialimporter.ImportManager) error {
	dir := config.CurrentCSVConfig().RawDataDir

	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No csv files found in %s\n", dir)
		return nil
	}

	for _, file := range files {
		if err := runImport(manager, file, ""); err != nil {
			return err
		}
	}
	return nil
}

func runSummary(db *financedb.DB, accountName string) error {
	ctx := context.Background()

	var accountID *int64
	if accountName != "" {
		account, err := db.AccountByName(ctx, accountName)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("no account named %q", accountName)
		}
		accountID = &account.ID
	}

	summary, err := db.Summary(ctx, accountID)
	if err != nil {
		return err
	}

	fmt.Printf("Total Accounts: %d\n", summary.TotalAccounts)
	fmt.Printf("Total Transactions: %d\n", summary.TotalTransactions)

	for _, account := range summary.ByAccount {
		fmt.Printf("\n%s (%s) - %s\n", account.AccountName, account.AccountType, account.Institution)
		fmt.Printf("  Transactions: %d\n", account.TransactionCount)

		if account.DisplayType == financedb.DisplayCreditCard {
			fmt.Printf("  Total Charges: $%.2f\n", account.TotalCharges)
			fmt.Printf("  Total Payments/Credits: $%.2f\n", account.TotalPayments)
			fmt.Printf("  Net Balance Change: $%.2f\n", account.NetChange)
		} else {
			fmt.Printf("  Total Income: $%.2f\n", account.TotalIncome)
			fmt.Printf("  Total Expenses: $%.2f\n", account.TotalExpenses)
			fmt.Printf("  Net: $%.2f\n", account.NetChange)
		}
	}

	return exportSummary(summary)
}

// exportSummary pushes the summary to influx when an endpoint is
// configured; otherwise it's a no-op.
func exportSummary(summary *financedb.Summary) error {
	influxSecrets := config.CurrentInfluxSecrets()
	influxConfig := config.CurrentInfluxConfig()

	if influxSecrets.InfluxEndpoint == "" || influxConfig.Database == "" {
		return nil
	}

	client, err := influxhelper.CreateInfluxClient(*influxSecrets)
	if err != nil {
		return fmt.Errorf("Error connecting to influx: %s", err)
	}
	defer client.Close()

	err = influxhelper.CreateDatabase(client, influxConfig.Database)
	if err != nil {
		return err
	}

	return influxhelper.WriteSummary(client, influxConfig.Database, influxConfig.SummaryMeasurement, summary)
}

func runTransactions(db *financedb.DB, limit int) error {
	transactions, err := db.Transactions(context.Background(), nil, limit)
	if err != nil {
		return err
	}

	for _, t := range transactions {
		description := t.Description
		if len(description) > 40 {
			description = description[:40]
		}
		fmt.Printf("%s | %-40s | %10.2f | %s\n", t.TransactionDate, description, t.Amount, t.AccountName)
	}

	return nil
}
