package common

import (
	"sync"

	"alumni-client/internal/errors"
)

// ErrInFlight 表示同一实体的同类操作尚未完成
var ErrInFlight = errors.New(errors.ErrResourceConflict, "operation already in progress")

// InflightGuard 保证同一键的操作同时只有一个在途。
// 键通常为 "实体类型:ID"，互不相关的键之间不会互相阻塞。
type InflightGuard struct {
	active map[string]bool
	mu     sync.Mutex
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{
		active: make(map[string]bool),
	}
}

// Acquire 尝试占用指定键，已被占用时返回 ErrInFlight
func (g *InflightGuard) Acquire(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[key] {
		return ErrInFlight
	}
	g.active[key] = true
	return nil
}

// Release 释放键
func (g *InflightGuard) Release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}

// Busy 判断键是否在途
func (g *InflightGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active[key]
}
