package scenario

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Generator は 負荷試験のターゲットを生成する構造体です。
// kv 操作に加えて、一定割合で統計エンドポイント（全体サマリと
// 監視対象キーの個別統計）への GET を混ぜます。
type Generator struct {
	BaseURL     string
	Keys        int
	ReadRatio   float64
	StatsRatio  float64
	MonitorKeys int
	ValueSize   int
	TTLRatio    float64
	TTLms       int
	ReadOnly    bool

	rnd *rand.Rand
	mu  sync.Mutex
	buf []byte
}

// NewGenerator は 指定されたパラメータに基づいて新しい Generator を作成します。
func NewGenerator(base string, keys int, readRatio, statsRatio float64, monitorKeys, valueSize int, ttlRatio float64, ttlms int, readOnly bool) *Generator {
	src := rand.NewSource(time.Now().UnixNano())
	return &Generator{
		BaseURL:     base,
		Keys:        keys,
		ReadRatio:   clamp(readRatio, 0, 1),
		StatsRatio:  clamp(statsRatio, 0, 1),
		MonitorKeys: min(monitorKeys, keys),
		ValueSize:   valueSize,
		TTLRatio:    clamp(ttlRatio, 0, 1),
		TTLms:       ttlms,
		ReadOnly:    readOnly,
		rnd:         rand.New(src),
		buf:         make([]byte, valueSize),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Key は i 番目のキー名を返します。監視対象は先頭 MonitorKeys 個です。
func Key(i int) string {
	return fmt.Sprintf("k%06d", i)
}

// Targeter は vegeta.Targeter インターフェースを実装し、負荷試験のターゲットを生成します。
func (g *Generator) Targeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		g.mu.Lock()
		defer g.mu.Unlock()

		// 統計エンドポイント: 半々でサマリと個別キー
		if g.rnd.Float64() < g.StatsRatio {
			t.Method = "GET"
			if g.MonitorKeys > 0 && g.rnd.Intn(2) == 0 {
				key := Key(g.rnd.Intn(g.MonitorKeys))
				t.URL = fmt.Sprintf("%s/stats/keys/%s", g.BaseURL, key)
			} else {
				t.URL = fmt.Sprintf("%s/stats", g.BaseURL)
			}
			t.Body = nil
			t.Header = nil
			return nil
		}

		key := Key(g.rnd.Intn(g.Keys))

		isGet := g.ReadOnly
		if !g.ReadOnly {
			if g.rnd.Float64() < g.ReadRatio {
				isGet = true
			}
		}

		if isGet {
			t.Method = "GET"
			t.URL = fmt.Sprintf("%s/kvs/%s", g.BaseURL, key)
			t.Body = nil
			t.Header = nil
			return nil
		}

		fillRandomLetters(g.rnd, g.buf)
		bodyObj := map[string]any{
			"value": string(g.buf),
		}
		if g.TTLms > 0 && g.rnd.Float64() < g.TTLRatio {
			bodyObj["ttl_ms"] = g.TTLms
		}
		b, err := json.Marshal(bodyObj)
		if err != nil {
			return err
		}
		t.Method = "PUT"
		t.URL = fmt.Sprintf("%s/kvs/%s", g.BaseURL, key)
		t.Body = b
		if t.Header == nil {
			t.Header = make(map[string][]string, 1)
		}
		t.Header["Content-Type"] = []string{"application/json"}
		return nil
	}
}

func fillRandomLetters(r *rand.Rand, buf []byte) {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	for i := range buf {
		buf[i] = letters[r.Intn(len(letters))]
	}
}
