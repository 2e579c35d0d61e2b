package influxhelper

import (
	"fmt"
	"strings"
	"time"

	"github.com/ModulasKhwaait/moneyMatters/internal/config"
	"github.com/ModulasKhwaait/moneyMatters/internal/financedb"
	influxdb "github.com/influxdata/influxdb/client/v2"
)

func CreateInfluxClient(secrets config.InfluxSecrets) (influxdb.Client, error) {
	return influxdb.NewHTTPClient(influxdb.HTTPConfig{
		Addr:     secrets.InfluxEndpoint,
		Username: secrets.InfluxUsername,
		Password: secrets.InfluxPassword,
	})
}

func CreateDatabase(influxClient influxdb.Client, name string) error {
	name = strings.Split(name, " ")[0]

	createCommand := fmt.Sprintf("CREATE DATABASE %s", name)

	q := influxdb.NewQuery(createCommand, "", "")
	if response, err := influxClient.Query(q); err == nil && response.Error() != nil {
		return err
	}
	return nil
}

// WriteSummary exports one point per account summary, tagged by account
// and display type so dashboards can split credit cards from deposit
// accounts.
func WriteSummary(influxClient influxdb.Client, database, measurement string, summary *financedb.Summary) error {
	bp, err := influxdb.NewBatchPoints(influxdb.BatchPointsConfig{
		Database:  database,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("Error creating InfluxDB point batch: %s", err.Error())
	}

	now := time.Now()

	for _, account := range summary.ByAccount {
		tags := map[string]string{
			"account_name": account.AccountName,
			"account_type": account.AccountType,
			"institution":  account.Institution,
			"display_type": account.DisplayType,
		}

		fields := map[string]interface{}{
			"transaction_count": account.TransactionCount,
			"net_change":        account.NetChange,
		}

		if account.DisplayType == financedb.DisplayCreditCard {
			fields["total_charges"] = account.TotalCharges
			fields["total_payments"] = account.TotalPayments
		} else {
			fields["total_expenses"] = account.TotalExpenses
			fields["total_income"] = account.TotalIncome
		}

		pt, err := influxdb.NewPoint(measurement, tags, fields, now)
		if err != nil {
			return fmt.Errorf("Error creating summary point: %s", err.Error())
		}
		bp.AddPoint(pt)
	}

	err = influxClient.Write(bp)
	if err != nil {
		return fmt.Errorf("Error writing summary to influx: %s", err.Error())
	}

	fmt.Printf("Wrote %d account summaries to influx\n", len(summary.ByAccount))

	return nil
}
