package config

import (
	"encoding/json"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/Shopify/ejson"
	"github.com/caarlos0/env/v6"
	"github.com/ghodss/yaml"
)

const (
	DefaultDatabasePath       = "data/finance.db"
	DefaultRawDataDir         = "data/raw"
	DefaultInstitution        = "chase"
	DefaultSummaryMeasurement = "account_summary"
)

var config Config
var secrets Secrets

func ReadConfig(configEnvVar, configFile, secretsFile string) error {
	_, err := readConfig(configEnvVar, configFile)
	if err != nil {
		return err
	}

	_, err = readSecrets(secretsFile)
	if err != nil {
		return err
	}
	return nil
}

func CurrentConfig() *Config {
	return &config
}

func CurrentSecrets() *Secrets {
	return &secrets
}

func CurrentSQLConfig() *SQLConfig {
	return &config.SQL
}

func CurrentCSVConfig() *CSVConfig {
	return &config.CSV
}

func CurrentInfluxConfig() *InfluxConfig {
	return &config.Influx
}

func CurrentInfluxSecrets() *InfluxSecrets {
	return &secrets.Influx
}

func readConfig(envName, filename string) (*Config, error) {
	var raw []byte
	var err error

	rawEnv := os.Getenv(envName)
	if rawEnv != "" {
		fmt.Printf("Reading config from environment variable %s\n", envName)
		raw = []byte(rawEnv)
	} else {
		raw, err = os.ReadFile(filename)
		// the config file is optional, defaults cover local use
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	if len(raw) > 0 {
		err = yaml.Unmarshal(raw, &config)
		if err != nil {
			return nil, err
		}
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.SQL.DatabasePath == "" {
		c.SQL.DatabasePath = DefaultDatabasePath
	}
	if c.CSV.RawDataDir == "" {
		c.CSV.RawDataDir = DefaultRawDataDir
	}
	if c.CSV.Institution == "" {
		c.CSV.Institution = DefaultInstitution
	}
	if c.Influx.SummaryMeasurement == "" {
		c.Influx.SummaryMeasurement = DefaultSummaryMeasurement
	}
}

func readSecrets(filename string) (*Secrets, error) {
	ejsonSecrets, ejsonErr := readEjsonSecrets(filename)

	envSecrets, envErr := readEnvSecrets()

	if ejsonErr == nil && envErr == nil {
		err := mergo.Merge(envSecrets, *ejsonSecrets)
		secrets = *envSecrets
		if err != nil {
			return nil, fmt.Errorf("Failed to merge secrets: %v", err)
		}
	} else if ejsonErr != nil && envErr == nil {
		secrets = *envSecrets
	} else if ejsonErr == nil && envErr != nil {
		fmt.Printf("Warning: Error to parse env secret. Env error: %v\n", envErr)
		secrets = *ejsonSecrets
	} else {
		return nil, fmt.Errorf("Failed to parse secrets. Ejson error: %v. Env error: %v", ejsonErr, envErr)
	}

	return &secrets, nil
}

func readEjsonSecrets(filename string) (*Secrets, error) {
	ejsonSecrets := Secrets{}
	ejsonKeyFile := os.Getenv("MONEYMATTERS_EJSON_SECRET_KEY")
	ejsonKey := []byte{}
	var err error

	if ejsonKeyFile != "" {
		ejsonKey, err = os.ReadFile(ejsonKeyFile)
		if err != nil {
			return nil, err
		}
	}
	raw, err := ejson.DecryptFile(filename, "/opt/ejson/keys", string(ejsonKey))
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(raw, &ejsonSecrets)
	return &ejsonSecrets, err
}

func readEnvSecrets() (*Secrets, error) {
	envSecrets := Secrets{}
	err := env.Parse(&envSecrets)
	return &envSecrets, err
}
