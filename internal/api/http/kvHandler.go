package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amakane-hakari/tokei/internal/store"
)

type kvHandler struct {
	st *store.Store[string, string]
}

func (h *kvHandler) mount(r chi.Router) {
	r.Route("/kvs", func(r chi.Router) {
		r.Put("/{key}", wrap(h.put))
		r.Get("/{key}", wrap(h.get))
		r.Delete("/{key}", wrap(h.del))
	})
}

type valueRequest struct {
	Value string `json:"value"`
	TTLms int    `json:"ttl_ms,omitempty"`
}

type valueDTO struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

func (h *kvHandler) put(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var req valueRequest
	if err := DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.TTLms < 0 {
		return BadRequest("negative ttl_ms")
	}
	h.st.SetWithTTL(key, req.Value, time.Duration(req.TTLms)*time.Millisecond)
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Value: req.Value})
	return nil
}

func (h *kvHandler) get(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	v, ok := h.st.Get(key)
	if !ok {
		return NotFound("key not found")
	}
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Value: v})
	return nil
}

func (h *kvHandler) del(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	h.st.Delete(key)
	writeSuccess(w, http.StatusOK, valueDTO{Key: key})
	return nil
}
