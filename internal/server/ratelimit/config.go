package ratelimit

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Tier   string
	Method string
	Path   string
	Limit  int // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// unlimited routes bypass every bucket, including the default one.
var unlimited = map[string]bool{
	"GET /health": true,
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment variables.
// Unparsable values fall back to their defaults.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the prediction tiers. A CSV upload scores many rows, so
// it gets a much smaller budget than single-record calls. Everything else uses the default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{
			Tier: "batch", Method: "POST", Path: "/predict_csv",
			Limit: envOr("RATE_LIMIT_CSV_LIMIT", 30, strconv.Atoi), Window: time.Minute, Burst: 5,
		},
		{
			Tier: "single", Method: "POST", Path: "/predict_api",
			Limit: envOr("RATE_LIMIT_API_LIMIT", 300, strconv.Atoi), Window: time.Minute, Burst: 30,
		},
	}
}

// MatchEndpoint returns the config for method and path, an unlimited config for routes
// that are never limited, or nil when the default limit applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Tier: "unlimited", Method: method, Path: path}
	}
	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	return nil
}

func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList parses a comma-separated address list. Entries that are not IP addresses
// are ignored.
func parseIPList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		addr, err := netip.ParseAddr(strings.TrimSpace(item))
		if err != nil {
			continue
		}
		out[addr.Unmap().String()] = true
	}
	return out
}
