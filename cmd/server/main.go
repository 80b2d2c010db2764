package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	apphttp "github.com/amakane-hakari/tokei/internal/api/http"
	ilog "github.com/amakane-hakari/tokei/internal/log"
	"github.com/amakane-hakari/tokei/internal/metrics"
	"github.com/amakane-hakari/tokei/internal/stats"
	"github.com/amakane-hakari/tokei/internal/store"
)

func main() {
	addr := getEnv("TOKEI_HTTP_ADDR", ":8080")
	capacity := getEnvInt("TOKEI_LRU_CAPACITY", 100_000)
	cleanup := time.Duration(getEnvInt("TOKEI_CLEANUP_INTERVAL_MS", 0)) * time.Millisecond

	logger := ilog.New()

	prom := metrics.NewProm("tokei")

	// 事前に監視するキーは環境変数から与えられる
	tracker := stats.New(splitKeys(os.Getenv("TOKEI_MONITOR_KEYS"))...)
	prom.SetMonitoredKeys(tracker.MonitoredKeyCount())
	// Recorder はここで 1 度だけ取り出し、ストアにだけ渡す
	recorder := tracker.Recorder()

	st := store.New[string, string](
		store.WithLogger(logger),
		store.WithMetrics(prom),
		store.WithCleanupInterval(cleanup),
	).WithEvictor(store.NewLRUEvictor[string, string](capacity)).
		WithRecorder(recorder)
	defer st.Close()

	router := apphttp.NewRouter(st, tracker, prom, logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server.start", "addr", addr, "lru_capacity", capacity,
		"monitored_keys", tracker.MonitoredKeyCount())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("server.shutdown.signal")
	case err := <-errCh:
		logger.Error("server.error", "err", err)
	}

	apphttp.SetDraining(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown.error", "err", err)
	} else {
		logger.Info("server.stopped")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
