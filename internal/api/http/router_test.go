package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amakane-hakari/tokei/internal/metrics"
	"github.com/amakane-hakari/tokei/internal/stats"
	"github.com/amakane-hakari/tokei/internal/store"
)

func newTestServer() http.Handler {
	return newTestServerWithMetrics(metrics.Noop{})
}

func newTestServerWithMetrics(m metrics.Interface) http.Handler {
	tr := stats.New[string]()
	st := store.New[string, string](store.WithMetrics(m)).WithRecorder(tr.Recorder())
	return NewRouter(st, tr, m, nil)
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request error : %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestKVS_CRUD(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	// PUT
	body := bytes.NewBufferString(`{"value":"bar"}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/kvs/foo", body)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("put status %d", res.StatusCode)
	}

	// GET
	getRes, err := http.Get(ts.URL + "/kvs/foo")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if getRes.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", getRes.StatusCode)
	}
	var env struct {
		Data valueDTO `json:"data"`
	}
	if err := json.NewDecoder(getRes.Body).Decode(&env); err != nil {
		t.Fatalf("get decode error: %v", err)
	}
	if env.Data.Value != "bar" {
		t.Fatalf("expected value 'bar', got '%s'", env.Data.Value)
	}

	// DELETE
	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/kvs/foo", nil)
	delRes, err := http.DefaultClient.Do(delReq)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if delRes.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", delRes.StatusCode)
	}

	// GET again (not found)
	getRes2, err := http.Get(ts.URL + "/kvs/foo")
	if err != nil {
		t.Fatalf("get2 error: %v", err)
	}
	if getRes2.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", getRes2.StatusCode)
	}
}
