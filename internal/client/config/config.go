package config

import "time"

// Config holds runtime settings for the netconfctl admin client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the netconfd gRPC endpoint.
//   - Username: NACM user the session acts as when a token is minted locally.
//   - SecretKey: HMAC key shared with the server, used only to mint a token.
//   - AccessToken: pre-issued token; when set, Username and SecretKey are ignored.
//   - Target: delete-config target branch, "startup" or "url".
//   - URL: resource locator for the url target.
type Config struct {
	ServerEndpointAddr string
	Username           string
	SecretKey          string
	AccessToken        string
	TokenValidity      time.Duration
	Target             string
	URL                string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Username = "admin"
	c.SecretKey = "secretKey"
	c.TokenValidity = 5 * time.Minute
	c.Target = "startup"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
