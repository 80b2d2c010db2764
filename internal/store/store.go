package store

import (
	"sync"
	"time"

	"github.com/amakane-hakari/tokei/internal/metrics"
	"github.com/amakane-hakari/tokei/internal/stats"
)

type entry[V any] struct {
	val      V
	expireAt int64 // 0 = no expiry (UnixNano)
}

type shard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]entry[V]
}

// Store は KVS のストアを表します。アクセス統計の記録先として
// stats.Recorder を 1 つ取り付けられます（WithRecorder 参照）。
type Store[K comparable, V any] struct {
	cfg             Config
	shards          []shard[K, V]
	shardMask       uint32 // Shards が 2^n の場合（hash & mask）で index
	cleanupInterval time.Duration
	stopCh          chan struct{}
	wg              sync.WaitGroup

	evictor Evictor[K, V]

	// 統計トラッカーは内部で同期しないため、ストア側で直列化する
	recMu    sync.Mutex
	recorder *stats.Recorder[K]
}

// New は新しい Store を作成します。
func New[K comparable, V any](opts ...Option) *Store[K, V] {
	cfg := Config{Shards: 16}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Shards < 1 {
		cfg.Shards = 16
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Noop{}
	}
	// 2 の冪に揃える
	cfg.Shards = nextPowerOfTwo(cfg.Shards)

	s := &Store[K, V]{
		cfg:             cfg,
		shards:          make([]shard[K, V], cfg.Shards),
		shardMask:       uint32(cfg.Shards - 1),
		cleanupInterval: cfg.CleanupInterval,
	}
	for i := range s.shards {
		s.shards[i].m = make(map[K]entry[V])
	}

	if s.cleanupInterval > 0 {
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go s.cleanupLoop()
	}

	return s
}

// WithEvictor はストアのエビクタを設定するメソッドです。
func (s *Store[K, V]) WithEvictor(ev Evictor[K, V]) *Store[K, V] {
	s.evictor = ev
	return s
}

// WithRecorder はアクセス統計の Recorder を取り付けるメソッドです。
// Recorder は Tracker 構築側から 1 度だけ渡される特権ハンドルで、
// ストアはこれを外部に公開しません。
func (s *Store[K, V]) WithRecorder(rec *stats.Recorder[K]) *Store[K, V] {
	s.recorder = rec
	return s
}

// SyncStats は記録と同じミューテックスの下で fn を実行します。
// トラッカーは自前の同期を持たないため、並行に動く呼び出し側からの
// 統計の参照や監視対象の変更は必ずここを通して直列化します。
func (s *Store[K, V]) SyncStats(fn func()) {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	fn()
}

// recordAccess は 1 回の Get の結果をトラッカーへ報告します。
func (s *Store[K, V]) recordAccess(key K, hit bool) {
	if s.recorder == nil {
		return
	}
	s.recMu.Lock()
	s.recorder.Record(key, hit)
	s.recMu.Unlock()
}

// Len はストア内のアイテム数を返します。
func (s *Store[K, V]) Len() int {
	now := time.Now().UnixNano()
	total := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for _, e := range sh.m {
			if e.expireAt == 0 || e.expireAt > now {
				total++
			}
		}
		sh.mu.RUnlock()
	}
	return total
}

// Close はストアをクローズします。
func (s *Store[K, V]) Close() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
}

func (s *Store[K, V]) getShard(key K) *shard[K, V] {
	h := s.hashKey(key)
	idx := int(h & s.shardMask)
	return &s.shards[idx]
}
