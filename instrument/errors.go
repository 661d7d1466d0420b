package instrument

import "errors"

var (
	// ErrUnknownUnderlying 期权引用的标的不在当前快照列表中。
	// 没有有效 spot 可供定价，必须立即上抛而不是取默认值。
	ErrUnknownUnderlying = errors.New("unknown underlying")
)
