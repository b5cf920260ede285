package subscription

import (
	"fmt"
	"sync"

	"classroom-chat/biz/infrastructure/repository/message"
	"classroom-chat/biz/infrastructure/util/log"
)

// Hub 进程内的消息订阅中心
// 每个(教室,学生)会话允许多个订阅者，写入侧在每次追加后推送会话全量快照
type Hub struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription
}

// Subscription 一次订阅的句柄，必须由持有方显式Close释放
type Subscription struct {
	hub    *Hub
	key    string
	ch     chan []*message.Message
	closed bool
	mu     sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string][]*Subscription),
	}
}

func conversationKey(joinCode, studentID string) string {
	return fmt.Sprintf("%s:%s", joinCode, studentID)
}

// Subscribe 订阅某个会话的消息快照流
func (h *Hub) Subscribe(joinCode, studentID string) *Subscription {
	sub := &Subscription{
		hub: h,
		key: conversationKey(joinCode, studentID),
		ch:  make(chan []*message.Message, 8),
	}
	h.mu.Lock()
	h.subs[sub.key] = append(h.subs[sub.key], sub)
	h.mu.Unlock()
	return sub
}

// Publish 向会话的全部订阅者推送当前全量快照，慢订阅者丢弃本次快照
func (h *Hub) Publish(joinCode, studentID string, snapshot []*message.Message) {
	h.mu.RLock()
	subs := append([]*Subscription(nil), h.subs[conversationKey(joinCode, studentID)]...)
	h.mu.RUnlock()
	for _, sub := range subs {
		sub.trySend(snapshot)
	}
}

// trySend 非阻塞推送一次快照
// 推送和Close持同一把锁串行化，已关闭的订阅直接丢弃
func (s *Subscription) trySend(snapshot []*message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- snapshot:
	default:
		log.Error("订阅通道已满，跳过快照推送, key: %s", s.key)
	}
}

// C 快照接收通道，订阅关闭后通道关闭
func (s *Subscription) C() <-chan []*message.Message {
	return s.ch
}

// Close 取消订阅并释放通道，可重复调用
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	h := s.hub
	h.mu.Lock()
	subs := h.subs[s.key]
	for i, sub := range subs {
		if sub == s {
			h.subs[s.key] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(h.subs[s.key]) == 0 {
		delete(h.subs, s.key)
	}
	h.mu.Unlock()
	close(s.ch)
}
