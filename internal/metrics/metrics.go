package metrics

import (
	"sync/atomic"
)

// Interface はメトリクス更新用抽象
type Interface interface {
	IncSetNew()
	IncSetUpdate()
	IncHit()
	IncMiss()
	AddEvicted(n int)
	AddTTLExpired(n int)
	SetLRUSize(n int)
	SetMonitoredKeys(n int)
}

// Noop は何もしないメトリクス実装
type Noop struct{}

// IncSetNew は何もしないメトリクス実装
func (Noop) IncSetNew() {}

// IncSetUpdate は何もしないメトリクス実装
func (Noop) IncSetUpdate() {}

// IncHit は何もしないメトリクス実装
func (Noop) IncHit() {}

// IncMiss は何もしないメトリクス実装
func (Noop) IncMiss() {}

// AddEvicted は何もしないメトリクス実装
func (Noop) AddEvicted(_ int) {}

// AddTTLExpired は何もしないメトリクス実装
func (Noop) AddTTLExpired(_ int) {}

// SetLRUSize は何もしないメトリクス実装
func (Noop) SetLRUSize(_ int) {}

// SetMonitoredKeys は何もしないメトリクス実装
func (Noop) SetMonitoredKeys(_ int) {}

// Simple はシンプルなメトリクス実装です。
type Simple struct {
	SetNew        atomic.Uint64
	SetUpdate     atomic.Uint64
	Hit           atomic.Uint64
	Miss          atomic.Uint64
	Evicted       atomic.Uint64
	TTLExpired    atomic.Uint64
	LRUSize       atomic.Uint64
	MonitoredKeys atomic.Uint64
}

// NewSimple は新しい Simple メトリクスを作成します。
func NewSimple() *Simple { return &Simple{} }

// IncSetNew は新しいキーが追加されたことをカウントします。
func (m *Simple) IncSetNew() { m.SetNew.Add(1) }

// IncSetUpdate は既存のキーが更新されたことをカウントします。
func (m *Simple) IncSetUpdate() { m.SetUpdate.Add(1) }

// IncHit はキャッシュヒットをカウントします。
func (m *Simple) IncHit() { m.Hit.Add(1) }

// IncMiss はキャッシュミスをカウントします。
func (m *Simple) IncMiss() { m.Miss.Add(1) }

// AddEvicted はエビクションされたアイテムの数を加算します。
func (m *Simple) AddEvicted(n int) {
	if n > 0 {
		m.Evicted.Add(uint64(n))
	}
}

// AddTTLExpired は TTL が期限切れになったアイテムの数を加算します。
func (m *Simple) AddTTLExpired(n int) {
	if n > 0 {
		m.TTLExpired.Add(uint64(n))
	}
}

// SetLRUSize は LRU サイズを設定します。
func (m *Simple) SetLRUSize(n int) {
	if n >= 0 {
		m.LRUSize.Store(uint64(n))
	}
}

// SetMonitoredKeys は統計監視中のキー数を設定します。
func (m *Simple) SetMonitoredKeys(n int) {
	if n >= 0 {
		m.MonitoredKeys.Store(uint64(n))
	}
}
