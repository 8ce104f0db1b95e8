package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (e.g., ":9102")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-i int      session idle timeout, minutes (0 disables)
//	-k string   module catalog file (YAML)
//	-url        accept url targets (use -url=false to disable)
//	-f int      url fetch timeout, seconds
//	-u string   S3 root user
//	-p string   S3 root password
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-x string   NACM exec default (permit|deny)
//	-l string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-s", "-t", "-i", "-k", "-f", "-u", "-p", "-g", "-e", "-x", "-l"}, "-url")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	sessionIdleTimeout := fs.Int("i", int(config.SessionIdleTimeout.Minutes()), "session idle timeout (in minutes)")

	fs.StringVar(&config.CatalogFile, "k", config.CatalogFile, "module catalog file")
	fs.BoolVar(&config.URLCapability, "url", config.URLCapability, "accept url targets")
	urlFetchTimeout := fs.Int("f", int(config.URLFetchTimeout.Seconds()), "url fetch timeout (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.ExecDefault, "x", config.ExecDefault, "NACM exec default")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.SessionIdleTimeout = time.Duration(*sessionIdleTimeout) * time.Minute
	config.URLFetchTimeout = time.Duration(*urlFetchTimeout) * time.Second
}
