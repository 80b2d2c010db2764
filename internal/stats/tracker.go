package stats

import "iter"

// Tracker は 1 つのキャッシュインスタンスに付随するアクセス統計トラッカーです。
// 監視対象キーごとの KeyStatistics と、監視状態に依らない全体カウンタ
// （総アクセス数・総ヒット数）を保持します。
//
// 内部で同期は一切行いません。複数ゴルーチンから使う場合は、所有側
// キャッシュが記録・参照の呼び出しを直列化する責任を持ちます。
type Tracker[K comparable] struct {
	totalAccesses uint64
	totalHits     uint64
	hitMap        map[K]KeyStatistics

	recorderTaken bool
}

// New は新しい Tracker を作成します。引数なしなら空のトラッカー、
// キーを渡した場合は各キーがそのまま Monitor されます。
func New[K comparable](keys ...K) *Tracker[K] {
	t := &Tracker[K]{hitMap: make(map[K]KeyStatistics, len(keys))}
	for _, k := range keys {
		t.Monitor(k)
	}
	return t
}

// NewFromSeq はキー列を走査し、各要素を Monitor した Tracker を作成します。
func NewFromSeq[K comparable](keys iter.Seq[K]) *Tracker[K] {
	t := New[K]()
	for k := range keys {
		t.Monitor(k)
	}
	return t
}

// TotalAccesses は報告された全アクセス数を返します。
// 監視対象でないキーへのアクセスも含みます。
func (t *Tracker[K]) TotalAccesses() uint64 { return t.totalAccesses }

// TotalHits は報告された全ヒット数を返します。
func (t *Tracker[K]) TotalHits() uint64 { return t.totalHits }

// TotalMisses は TotalAccesses − TotalHits を返します。
func (t *Tracker[K]) TotalMisses() uint64 { return t.totalAccesses - t.totalHits }

// HitRate は全体のヒット率 [0, 1] を返します。
// アクセスが 1 件もない場合は 0/0 となり NaN を返します。ガードはしません。
func (t *Tracker[K]) HitRate() float64 {
	return float64(t.totalHits) / float64(t.totalAccesses)
}

// MissRate は 1 − HitRate() を返します。アクセス 0 件なら同様に NaN です。
func (t *Tracker[K]) MissRate() float64 { return 1 - t.HitRate() }

// StatsFor はキーの統計のコピーを返します。返り値は読み取り専用の
// スナップショットで、後続の Unmonitor に影響されません。
// キーが監視対象でなければ UnmonitoredKeyError を返します。
func (t *Tracker[K]) StatsFor(key K) (KeyStatistics, error) {
	ks, ok := t.hitMap[key]
	if !ok {
		return KeyStatistics{}, &UnmonitoredKeyError{Key: key}
	}
	return ks, nil
}

// HitsFor はキーのヒット回数を返します。
// 監視対象でなければ UnmonitoredKeyError を返します。
func (t *Tracker[K]) HitsFor(key K) (uint64, error) {
	ks, err := t.StatsFor(key)
	if err != nil {
		return 0, err
	}
	return ks.Hits(), nil
}

// MissesFor はキーのミス回数を返します。
// 監視対象でなければ UnmonitoredKeyError を返します。
func (t *Tracker[K]) MissesFor(key K) (uint64, error) {
	ks, err := t.StatsFor(key)
	if err != nil {
		return 0, err
	}
	return ks.Misses(), nil
}

// AccessesFor はキーのアクセス回数（ヒット + ミス）を返します。
// 監視対象でなければ UnmonitoredKeyError を返します。
func (t *Tracker[K]) AccessesFor(key K) (uint64, error) {
	ks, err := t.StatsFor(key)
	if err != nil {
		return 0, err
	}
	return ks.Accesses(), nil
}

// Monitor はキーを監視対象に加えます。既に監視中なら既存カウンタを
// 保持したまま何もしません（冪等）。
func (t *Tracker[K]) Monitor(key K) {
	if _, ok := t.hitMap[key]; ok {
		return
	}
	t.hitMap[key] = KeyStatistics{}
}

// Unmonitor はキーを監視対象から外します。対象外なら何もしません。
func (t *Tracker[K]) Unmonitor(key K) {
	delete(t.hitMap, key)
}

// UnmonitorAll は監視対象キーを全て外します。全体カウンタは変化しません。
func (t *Tracker[K]) UnmonitorAll() {
	clear(t.hitMap)
}

// IsMonitoring はキーが現在監視対象かどうかを返します。
func (t *Tracker[K]) IsMonitoring(key K) bool {
	_, ok := t.hitMap[key]
	return ok
}

// MonitoredKeyCount は監視対象キーの数を返します。
func (t *Tracker[K]) MonitoredKeyCount() int { return len(t.hitMap) }

// IsMonitoringKeys は監視対象キーが 1 つでもあれば true を返します。
func (t *Tracker[K]) IsMonitoringKeys() bool { return len(t.hitMap) > 0 }
