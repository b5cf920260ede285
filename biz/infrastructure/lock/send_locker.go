package lock

import (
	"context"

	"classroom-chat/biz/infrastructure/util/log"
)

const (
	sendLockTTL  = 30  // 秒，覆盖一次AI调用的最长耗时
	sendLockWait = 200 // 毫秒
)

// RedisSendLocker 基于ChatMutex的发送互斥实现
type RedisSendLocker struct{}

func NewRedisSendLocker() *RedisSendLocker {
	return &RedisSendLocker{}
}

func (l *RedisSendLocker) Acquire(ctx context.Context, key string) (func(), error) {
	m := NewChatMutex(ctx, key, sendLockTTL, sendLockWait)
	if err := m.Lock(); err != nil {
		return nil, err
	}
	release := func() {
		if err := m.Unlock(); err != nil || m.Expired() {
			log.Error("unlock error: %v, lock expired: %v", err, m.Expired())
		}
	}
	return release, nil
}
