package stats

import (
	"errors"
	"fmt"
)

// ErrUnmonitoredKey は 監視対象でないキーへの個別統計の問い合わせを表す
// 番兵エラーです。errors.Is での判定に使います。
var ErrUnmonitoredKey = errors.New("key is not monitored")

// UnmonitoredKeyError は 対象キーを保持する具象エラーです。
// このパッケージが返すエラーはこの 1 種類だけです。
type UnmonitoredKeyError struct {
	Key any
}

func (e *UnmonitoredKeyError) Error() string {
	return fmt.Sprintf("stats: key %v is not monitored", e.Key)
}

// Is は errors.Is(err, ErrUnmonitoredKey) を成立させます。
func (e *UnmonitoredKeyError) Is(target error) bool {
	return target == ErrUnmonitoredKey
}
