package lock

import "errors"

var ErrLockTimeout = errors.New("acquire lock timeout")
