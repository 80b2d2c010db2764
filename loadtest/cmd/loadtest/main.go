// Package main は 負荷試験ツールのエントリーポイントを提供します。
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/amakane-hakari/tokei/loadtest/attacker"
	"github.com/amakane-hakari/tokei/loadtest/config"
	"github.com/amakane-hakari/tokei/loadtest/scenario"
)

func main() {
	cfg := config.Load()

	fmt.Printf("[INFO] base-url=%s rate=%d duration=%s read-ratio=%.2f stats-ratio=%.2f keys=%d monitor-keys=%d value-size=%d ttl-ratio=%.2f ttl-ms=%d read-only=%v\n",
		cfg.BaseURL, cfg.Rate, cfg.Duration, cfg.ReadRatio, cfg.StatsRatio, cfg.Keys, cfg.MonitorKeys, cfg.ValueSize, cfg.TTLRatio, cfg.TTLMillis, cfg.DisablePUT)

	// 攻撃前に先頭キーを監視対象にしておく
	if err := monitorKeys(cfg); err != nil {
		fmt.Printf("[ERROR] monitor setup: %v\n", err)
		os.Exit(1)
	}

	gen := scenario.NewGenerator(
		cfg.BaseURL,
		cfg.Keys,
		cfg.ReadRatio,
		cfg.StatsRatio,
		cfg.MonitorKeys,
		cfg.ValueSize,
		cfg.TTLRatio,
		cfg.TTLMillis,
		cfg.DisablePUT,
	)

	runner := &attacker.Runner{
		Rate:     cfg.Rate,
		Duration: cfg.Duration,
		Timeout:  cfg.Timeout,
		Name:     cfg.Name,
		Output:   cfg.Output,
		BaseURL:  cfg.BaseURL,
	}

	if _, err := runner.Run(gen.Targeter()); err != nil {
		fmt.Printf("[ERROR] attack: %v\n", err)
		os.Exit(1)
	}
}

func monitorKeys(cfg *config.Config) error {
	cli := &http.Client{Timeout: cfg.Timeout}
	for i := 0; i < cfg.MonitorKeys && i < cfg.Keys; i++ {
		url := fmt.Sprintf("%s/stats/keys/%s", cfg.BaseURL, scenario.Key(i))
		req, err := http.NewRequest(http.MethodPut, url, strings.NewReader(""))
		if err != nil {
			return err
		}
		resp, err := cli.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("monitor %s: status %d", scenario.Key(i), resp.StatusCode)
		}
	}
	return nil
}
