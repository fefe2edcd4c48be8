package resolve_discount

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_discount: internal error")
)
