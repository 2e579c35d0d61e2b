package config

type Config struct {
	// cron spec for the recurring directory import (empty disables it)
	UpdateFrequency string `json:"updateFrequency"`
	SQL             SQLConfig
	CSV             CSVConfig
	Influx          InfluxConfig
}

type SQLConfig struct {
	// path of the sqlite database file, created (directory included) on
	// first open. Ignored when a DATABASE_URL secret is set.
	DatabasePath string `json:"databasePath"`
}

type CSVConfig struct {
	// directory scanned by the import-dir task
	RawDataDir  string `json:"rawDataDir"`
	Institution string `json:"institution"`
	// cleaned rows dated strictly before this date (YYYY-MM-DD) are not loaded
	ImportAfterDate string `json:"importAfterDate"`
}

type InfluxConfig struct {
	Database           string `json:"database"`
	SummaryMeasurement string `json:"summaryMeasurement"`
}

type Secrets struct {
	// Alternative to the sqlite file, used for hosted postgres deployments
	DatabaseURL string `env:"DATABASE_URL"`

	Influx InfluxSecrets
}

type InfluxSecrets struct {
	InfluxEndpoint string `json:"influxEndpoint" env:"INFLUX_ENDPOINT"`
	InfluxUsername string `json:"influxUsername" env:"INFLUX_USERNAME"`
	InfluxPassword string `json:"influxPassword" env:"INFLUX_PASSWORD"`
}
