package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/netconfd/internal/flagx"
	"github.com/dmitrijs2005/netconfd/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	Username           string         `json:"username"`
	SecretKey          string         `json:"secret_key"`
	AccessToken        string         `json:"access_token"`
	TokenValidity      timex.Duration `json:"token_validity"`
	Target             string         `json:"target"`
	URL                string         `json:"url"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Absent or empty fields keep their current value. Panics on read
// or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.Username, jc.Username)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.Target, jc.Target)
	setString(&cfg.URL, jc.URL)
	if jc.TokenValidity.Duration != 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
