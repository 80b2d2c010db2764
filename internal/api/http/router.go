package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ilog "github.com/amakane-hakari/tokei/internal/log"
	"github.com/amakane-hakari/tokei/internal/metrics"
	"github.com/amakane-hakari/tokei/internal/stats"
	"github.com/amakane-hakari/tokei/internal/store"
)

// NewRouter はアプリケーションのルーターを構築します。
// m にはストアと同じメトリクス実装を渡します（nil なら Noop）。
func NewRouter(st *store.Store[string, string], tr *stats.Tracker[string], m metrics.Interface, l ilog.Logger) http.Handler {
	if m == nil {
		m = metrics.Noop{}
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware())
	r.Use(RecoverMiddleware())
	r.Use(AccessLog(l))

	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	kv := &kvHandler{st: st}
	kv.mount(r)

	sh := &statsHandler{st: st, tr: tr, m: m}
	sh.mount(r)

	return r
}
