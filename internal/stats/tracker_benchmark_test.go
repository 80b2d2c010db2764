package stats

import (
	"fmt"
	"math/rand"
	"testing"
)

type benchConfig struct {
	monitored int
	keySpace  int
	hitRatio  float64
}

var benchMatrix = []benchConfig{
	{monitored: 0, keySpace: 10_000, hitRatio: 0.90},
	{monitored: 1_000, keySpace: 10_000, hitRatio: 0.90},
	{monitored: 10_000, keySpace: 10_000, hitRatio: 0.90},
	{monitored: 10_000, keySpace: 10_000, hitRatio: 0.10},
}

func BenchmarkRecorder_Record(b *testing.B) {
	for _, cfg := range benchMatrix {
		name := fmt.Sprintf("monitored=%d, keySpace=%d, hitRatio=%.0f",
			cfg.monitored, cfg.keySpace, cfg.hitRatio*100)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()

			// 乱数(固定シードで再現性確保)
			rnd := rand.New(rand.NewSource(42))

			tr := New[string]()
			rec := tr.Recorder()
			keys := make([]string, cfg.keySpace)
			for i := range keys {
				keys[i] = fmt.Sprintf("k%05d", i)
			}
			for i := 0; i < cfg.monitored; i++ {
				tr.Monitor(keys[i])
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				k := keys[rnd.Intn(cfg.keySpace)]
				rec.Record(k, rnd.Float64() < cfg.hitRatio)
			}
			b.StopTimer()

			b.ReportMetric(float64(tr.TotalHits()), "hits_total")
		})
	}
}
