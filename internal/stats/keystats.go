package stats

// KeyStatistics は 1 キー分のヒット/ミスカウンタを表します。
// カウンタは単調増加で、リセットは Unmonitor 後の再 Monitor による
// 再作成でのみ起こります。オーバーフローは扱いません。
// 書き込みは所有する Tracker だけが行います。
type KeyStatistics struct {
	hits   uint64
	misses uint64
}

// Hits はこのキーで観測されたヒット回数を返します。
func (k KeyStatistics) Hits() uint64 { return k.hits }

// Misses はこのキーで観測されたミス回数を返します。
func (k KeyStatistics) Misses() uint64 { return k.misses }

// Accesses はこのキーへのアクセス回数（ヒット + ミス）を返します。
func (k KeyStatistics) Accesses() uint64 { return k.hits + k.misses }
