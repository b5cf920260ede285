package lock

import (
	"context"
	"time"

	"classroom-chat/biz/infrastructure/config"
	rds "classroom-chat/biz/infrastructure/redis"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

// ChatMutex 基于Redis的会话级互斥锁
// 同一(教室,学生)会话同一时刻只允许一条消息在途
type ChatMutex struct {
	ctx      context.Context
	lock     *redis.RedisLock
	ttl      int
	deadline time.Time
}

// NewChatMutex 创建互斥锁，ttl单位秒，wait为获取锁的最长等待毫秒数
func NewChatMutex(ctx context.Context, key string, ttl int, wait int) *ChatMutex {
	l := redis.NewRedisLock(rds.GetRedis(config.GetConfig()), key)
	l.SetExpire(ttl)
	return &ChatMutex{
		ctx:      ctx,
		lock:     l,
		ttl:      ttl,
		deadline: time.Now().Add(time.Duration(wait) * time.Millisecond),
	}
}

// Lock 在等待窗口内轮询获取锁，超时返回错误
func (m *ChatMutex) Lock() error {
	for {
		ok, err := m.lock.AcquireCtx(m.ctx)
		if err != nil {
			return err
		}
		if ok {
			m.deadline = time.Now().Add(time.Duration(m.ttl) * time.Second)
			return nil
		}
		if time.Now().After(m.deadline) {
			return ErrLockTimeout
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Unlock 释放锁
func (m *ChatMutex) Unlock() error {
	_, err := m.lock.ReleaseCtx(m.ctx)
	return err
}

// Expired 判断锁是否已经超过TTL被动失效
func (m *ChatMutex) Expired() bool {
	return time.Now().After(m.deadline)
}
