package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amakane-hakari/tokei/internal/metrics"
	"github.com/amakane-hakari/tokei/internal/stats"
	"github.com/amakane-hakari/tokei/internal/store"
)

// statsHandler は統計トラッカーの読み取り/監視対象操作を公開します。
// ハンドラが持つのは公開側の *Tracker だけで、記録はストア内部の
// Recorder からしか行われません。トラッカーは同期を持たないため、
// 全ての参照・変更はストアの SyncStats を通して直列化します。
// 監視対象数が変わる操作では monitored_keys ゲージも更新します。
type statsHandler struct {
	st *store.Store[string, string]
	tr *stats.Tracker[string]
	m  metrics.Interface
}

func (h *statsHandler) mount(r chi.Router) {
	r.Route("/stats", func(r chi.Router) {
		r.Get("/", wrap(h.summary))
		r.Delete("/keys", wrap(h.unmonitorAll))
		r.Get("/keys/{key}", wrap(h.keyStats))
		r.Put("/keys/{key}", wrap(h.monitor))
		r.Delete("/keys/{key}", wrap(h.unmonitor))
	})
}

type statsSummaryDTO struct {
	TotalAccesses uint64 `json:"total_accesses"`
	TotalHits     uint64 `json:"total_hits"`
	TotalMisses   uint64 `json:"total_misses"`
	// アクセス 0 件のときのレートは NaN（JSON で表現できない）なので省略する
	HitRate       *float64 `json:"hit_rate,omitempty"`
	MissRate      *float64 `json:"miss_rate,omitempty"`
	MonitoredKeys int      `json:"monitored_keys"`
}

type keyStatsDTO struct {
	Key      string `json:"key"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Accesses uint64 `json:"accesses"`
}

type monitorDTO struct {
	Key       string `json:"key,omitempty"`
	Monitored bool   `json:"monitored"`
	Removed   int    `json:"removed,omitempty"`
}

func (h *statsHandler) summary(w http.ResponseWriter, _ *http.Request) error {
	var dto statsSummaryDTO
	h.st.SyncStats(func() {
		dto.TotalAccesses = h.tr.TotalAccesses()
		dto.TotalHits = h.tr.TotalHits()
		dto.TotalMisses = h.tr.TotalMisses()
		dto.MonitoredKeys = h.tr.MonitoredKeyCount()
		if dto.TotalAccesses > 0 {
			hr := h.tr.HitRate()
			mr := h.tr.MissRate()
			dto.HitRate = &hr
			dto.MissRate = &mr
		}
	})
	writeSuccess(w, http.StatusOK, dto)
	return nil
}

func (h *statsHandler) keyStats(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var (
		ks  stats.KeyStatistics
		err error
	)
	h.st.SyncStats(func() {
		ks, err = h.tr.StatsFor(key)
	})
	if err != nil {
		return err
	}
	writeSuccess(w, http.StatusOK, keyStatsDTO{
		Key:      key,
		Hits:     ks.Hits(),
		Misses:   ks.Misses(),
		Accesses: ks.Accesses(),
	})
	return nil
}

func (h *statsHandler) monitor(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	h.st.SyncStats(func() {
		h.tr.Monitor(key)
		h.m.SetMonitoredKeys(h.tr.MonitoredKeyCount())
	})
	writeSuccess(w, http.StatusOK, monitorDTO{Key: key, Monitored: true})
	return nil
}

func (h *statsHandler) unmonitor(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	h.st.SyncStats(func() {
		h.tr.Unmonitor(key)
		h.m.SetMonitoredKeys(h.tr.MonitoredKeyCount())
	})
	writeSuccess(w, http.StatusOK, monitorDTO{Key: key, Monitored: false})
	return nil
}

func (h *statsHandler) unmonitorAll(w http.ResponseWriter, _ *http.Request) error {
	var removed int
	h.st.SyncStats(func() {
		removed = h.tr.MonitoredKeyCount()
		h.tr.UnmonitorAll()
		h.m.SetMonitoredKeys(0)
	})
	writeSuccess(w, http.StatusOK, monitorDTO{Monitored: false, Removed: removed})
	return nil
}
