package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/netconfd/internal/flagx"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/timex"
)

// JsonExecRule is one entry of "exec_rules".
type JsonExecRule struct {
	User   string `json:"user"`
	RPC    string `json:"rpc"`
	Action string `json:"action"`
}

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// Members missing from the file leave the corresponding Config field as it was.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	MetricsAddr                 *string         `json:"metrics_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration  `json:"access_token_validity_duration"`
	SessionIdleTimeout          *timex.Duration `json:"session_idle_timeout"`
	CatalogFile                 string          `json:"catalog_file"`
	URLCapability               *bool           `json:"url_capability"`
	URLFetchTimeout             timex.Duration  `json:"url_fetch_timeout"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	ExecDefault                 string          `json:"exec_default"`
	ExecRules                   []JsonExecRule  `json:"exec_rules"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; without
// them no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.SessionIdleTimeout != nil {
		config.SessionIdleTimeout = c.SessionIdleTimeout.Duration
	}
	setString(&config.CatalogFile, c.CatalogFile)
	if c.URLCapability != nil {
		config.URLCapability = *c.URLCapability
	}
	if c.URLFetchTimeout.Duration != 0 {
		config.URLFetchTimeout = c.URLFetchTimeout.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.ExecDefault, c.ExecDefault)
	setString(&config.LogLevel, c.LogLevel)

	for _, r := range c.ExecRules {
		config.ExecRules = append(config.ExecRules, models.ExecRule{
			UserName: r.User,
			RPCPath:  r.RPC,
			Action:   models.RuleAction(r.Action),
		})
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
