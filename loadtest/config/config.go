package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BaseURL     string
	Keys        int
	ReadRatio   float64
	StatsRatio  float64
	MonitorKeys int
	Rate        int
	Duration    time.Duration
	ValueSize   int
	TTLRatio    float64
	TTLMillis   int
	Output      string
	Timeout     time.Duration
	Name        string
	DisablePUT  bool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load はフラグと環境変数から負荷試験の設定を読み込みます。
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.BaseURL, "base-url", envOr("LT_BASE_URL", "http://localhost:8080"), "target base URL")
	flag.IntVar(&cfg.Keys, "keys", parseIntEnv("LT_KEYS", 10_000), "key space size")
	flag.Float64Var(&cfg.ReadRatio, "read-ratio", parseFloatEnv("LT_READ_RATIO", 0.9), "GET ratio among kv operations")
	flag.Float64Var(&cfg.StatsRatio, "stats-ratio", parseFloatEnv("LT_STATS_RATIO", 0.05), "ratio of requests hitting the stats endpoints")
	flag.IntVar(&cfg.MonitorKeys, "monitor-keys", parseIntEnv("LT_MONITOR_KEYS", 100), "number of keys to monitor before the attack")
	flag.IntVar(&cfg.Rate, "rate", parseIntEnv("LT_RATE", 500), "requests per second")
	flag.DurationVar(&cfg.Duration, "duration", 30*time.Second, "attack duration")
	flag.IntVar(&cfg.ValueSize, "value-size", parseIntEnv("LT_VALUE_SIZE", 128), "value size in bytes")
	flag.Float64Var(&cfg.TTLRatio, "ttl-ratio", parseFloatEnv("LT_TTL_RATIO", 0), "ratio of PUTs carrying a ttl")
	flag.IntVar(&cfg.TTLMillis, "ttl-ms", parseIntEnv("LT_TTL_MS", 0), "ttl in milliseconds for ttl PUTs")
	flag.StringVar(&cfg.Output, "output", envOr("LT_OUTPUT", "results.bin"), "vegeta result output file")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.StringVar(&cfg.Name, "name", envOr("LT_NAME", "tokei-loadtest"), "attack name")
	flag.BoolVar(&cfg.DisablePUT, "read-only", false, "disable PUT requests")

	flag.Parse()
	return cfg
}
