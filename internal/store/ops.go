package store

import "time"

// Set はキーと値をストアにセットします。
func (s *Store[K, V]) Set(key K, value V) {
	s.SetWithTTL(key, value, 0)
}

// SetWithTTL はキーと値を TTL 付きでストアにセットします。ttl 0 で無期限。
func (s *Store[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	sh := s.getShard(key)
	sh.mu.Lock()
	_, existed := sh.m[key]
	sh.m[key] = entry[V]{val: value, expireAt: exp}
	sh.mu.Unlock()

	if existed {
		s.cfg.Metrics.IncSetUpdate()
	} else {
		s.cfg.Metrics.IncSetNew()
	}

	if s.cfg.Logger != nil {
		if existed {
			s.cfg.Logger.Debug("store.update", "key", key)
		} else {
			s.cfg.Logger.Debug("store.set", "key", key, "ttl", ttl.String())
		}
	}

	if s.evictor != nil {
		victims := s.evictor.OnSet(key, value, existed)
		for _, vk := range victims {
			s.deleteInternal(vk, true)
		}
		if len(victims) > 0 {
			s.cfg.Metrics.AddEvicted(len(victims))
			if s.cfg.Logger != nil {
				s.cfg.Logger.Info("store.evict", "count", len(victims), "victims", victims)
			}
		}
		s.reportLRUSize()
	}
}

// Get はキーに対応する値を取得します。結果は常にヒット/ミスとして
// 統計トラッカーへ報告されます（期限切れはミス扱い）。
func (s *Store[K, V]) Get(key K) (V, bool) {
	sh := s.getShard(key)
	sh.mu.RLock()
	e, exists := sh.m[key]
	sh.mu.RUnlock()
	if !exists {
		s.recordAccess(key, false)
		s.cfg.Metrics.IncMiss()
		if s.evictor != nil {
			s.evictor.OnGet(key, false)
		}
		var zero V
		return zero, false
	}
	if e.expireAt > 0 && e.expireAt <= time.Now().UnixNano() {
		// 遅延削除
		sh.mu.Lock()
		// 期限内に他ゴルーチンが更新しているか再確認
		cur, still := sh.m[key]
		if still && cur.expireAt == e.expireAt {
			delete(sh.m, key)
		}
		sh.mu.Unlock()
		if s.evictor != nil {
			s.evictor.OnDelete(key)
			s.reportLRUSize()
		}
		s.recordAccess(key, false)
		s.cfg.Metrics.IncMiss()
		s.cfg.Metrics.AddTTLExpired(1)
		if s.cfg.Logger != nil {
			s.cfg.Logger.Debug("store.ttl.expired", "key", key)
		}
		var zero V
		return zero, false
	}
	s.recordAccess(key, true)
	s.cfg.Metrics.IncHit()
	if s.evictor != nil {
		s.evictor.OnGet(key, true)
	}
	return e.val, true
}

// Delete はキーに対応する値を削除します。
func (s *Store[K, V]) Delete(key K) {
	s.deleteInternal(key, false)
}

func (s *Store[K, V]) deleteInternal(key K, fromEviction bool) {
	sh := s.getShard(key)
	sh.mu.Lock()
	_, existed := sh.m[key]
	if existed {
		delete(sh.m, key)
	}
	sh.mu.Unlock()
	if existed && s.evictor != nil && !fromEviction {
		s.evictor.OnDelete(key)
		s.reportLRUSize()
	}
}

func (s *Store[K, V]) reportLRUSize() {
	if sp, ok := s.evictor.(interface{ Size() int }); ok {
		s.cfg.Metrics.SetLRUSize(sp.Size())
	}
}
