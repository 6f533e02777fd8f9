package board

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"sketchpad/internal/metrics"
)

// ErrNotFound 画板不存在
var ErrNotFound = errors.New("画板不存在")

// Registry 按 ID 管理多个画板
type Registry struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

// NewRegistry 创建画板注册表
func NewRegistry() *Registry {
	return &Registry{boards: make(map[string]*Board)}
}

// Create 创建画板并分配 ID
func (r *Registry) Create(opts Options) (string, *Board, error) {
	b, err := New(opts)
	if err != nil {
		return "", nil, err
	}
	id := uuid.NewString()
	r.Put(id, b)
	return id, b, nil
}

// Put 以指定 ID 注册画板，已存在时替换
func (r *Registry) Put(id string, b *Board) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		metrics.BoardsActive.Inc()
	}
	r.boards[id] = b
}

// Get 查找画板
func (r *Registry) Get(id string) (*Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Delete 删除画板
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.boards, id)
	metrics.BoardsActive.Dec()
	return nil
}

// IDs 所有画板 ID（已排序）
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.boards))
	for id := range r.boards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len 画板数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boards)
}
