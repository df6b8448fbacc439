package config

import "github.com/spf13/cobra"

// flagKeys maps CLI flag names to configuration keys
var flagKeys = map[string]string{
	"json":         "json",
	"proxy":        "proxy",
	"timeout":      "timeout",
	"user-agent":   "user_agent",
	"concurrency":  "concurrency",
	"max-sites":    "max_sites",
	"rate-limit":   "rate_limit_rps",
	"browser-pool": "browser_pool_size",
	"chrome-path":  "chrome_path",
	"metrics-addr": "metrics_addr",
	"dsn":          "database_dsn",
	"table":        "database_table",
}

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("json", DefaultJSONLog, "Write logs as JSON")
	pf.String("proxy", "", "Set HTTP proxy (default: taken from HTTP_PROXY/HTTPS_PROXY)")
	pf.Duration("timeout", DefaultHTTPTimeout, "Set hard timeout for requests")
	pf.String("user-agent", "", "Custom user agent string")
	pf.Float64("rate-limit", DefaultRateLimitRPS, "Requests per second per host (0 = unlimited)")
	pf.Int("browser-pool", DefaultBrowserPoolSize, "Keep N warm browser tabs for the render fallback (0 = launch per render)")
	pf.String("chrome-path", "", "Path to the Chrome/Chromium executable")
	pf.String("config", "", "Path to configuration file (optional)")
}

// RegisterScanFlags registers the flags that only apply to batch scans
func RegisterScanFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	f := cmd.Flags()
	f.IntP("concurrency", "c", DefaultConcurrency, "Max in-flight fetches (and extractions) per site")
	f.Int("max-sites", DefaultMaxSites, "Max sites processed at once (0 = unlimited, -1 = auto)")
	f.String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	f.String("dsn", "", "Load targets from this Postgres database")
	f.String("table", DefaultDatabaseTable, "Table holding site, path and position columns")
}
