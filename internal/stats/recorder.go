package stats

// Recorder は Tracker の特権的なミューテータです。アクセス結果の記録は
// この型を通してしか行えません。Tracker.Recorder() で取得できるのは
// 1 度だけで、組み立て時に所有側キャッシュへ渡します。公開 API 側には
// *Tracker（読み取り + 監視対象の付け外し）だけを渡すことで、一般の
// 呼び出し側がカウンタを進める経路を塞ぎます。
type Recorder[K comparable] struct {
	t *Tracker[K]
}

// Recorder はこの Tracker に対する唯一の Recorder を返します。
// 2 回目の呼び出しは panic します。
func (t *Tracker[K]) Recorder() *Recorder[K] {
	if t.recorderTaken {
		panic("stats: Recorder already taken for this Tracker")
	}
	t.recorderTaken = true
	return &Recorder[K]{t: t}
}

// Record は 1 回のアクセス結果を記録します。総アクセス数は常に進み、
// hit のときだけ総ヒット数が進みます。キーが監視対象の場合に限り
// 個別カウンタも進みます。対象外のキーでも失敗せず、監視を開始する
// こともありません。
func (r *Recorder[K]) Record(key K, hit bool) {
	t := r.t
	t.totalAccesses++
	if hit {
		t.totalHits++
	}
	ks, ok := t.hitMap[key]
	if !ok {
		return
	}
	if hit {
		ks.hits++
	} else {
		ks.misses++
	}
	t.hitMap[key] = ks
}
