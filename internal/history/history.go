package history

import "sketchpad/internal/surface"

// Canvas 可被快照和恢复的画布
type Canvas interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot)
}

// History 撤销/重做管理器。
// 撤销栈顶始终是当前（或最近一次）笔画开始前的画布状态；
// 空撤销栈即为下限，最底部的记录就是初始空白画布。
type History struct {
	undoStack  []surface.Snapshot // 撤销栈（保存之前的状态快照）
	redoStack  []surface.Snapshot // 重做栈
	maxHistory int                // 撤销栈最大深度，0 表示不限制
}

// New 创建历史记录管理器，maxHistory <= 0 表示不限制深度
func New(maxHistory int) *History {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &History{
		undoStack:  make([]surface.Snapshot, 0),
		redoStack:  make([]surface.Snapshot, 0),
		maxHistory: maxHistory,
	}
}

// Record 在笔画开始前保存画布状态（清空重做栈：新操作后重做无效）
func (h *History) Record(c Canvas) {
	h.Push(c.Snapshot())
}

// Push 压入一个已捕获的快照，语义同 Record
func (h *History) Push(snap surface.Snapshot) {
	h.undoStack = append(h.undoStack, snap)
	if h.maxHistory > 0 && len(h.undoStack) > h.maxHistory {
		// 淘汰最旧的记录，释放引用
		h.undoStack[0] = surface.Snapshot{}
		h.undoStack = h.undoStack[1:]
	}
	clear(h.redoStack)
	h.redoStack = h.redoStack[:0]
}

// Undo 撤销上一步操作，返回是否成功
func (h *History) Undo(c Canvas) bool {
	if len(h.undoStack) == 0 {
		return false
	}

	// 保存当前状态到重做栈
	h.redoStack = append(h.redoStack, c.Snapshot())

	// 恢复到上一个状态
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = surface.Snapshot{}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	c.Restore(last)

	return true
}

// Redo 重做上一步撤销，返回是否成功
func (h *History) Redo(c Canvas) bool {
	if len(h.redoStack) == 0 {
		return false
	}

	// 保存当前状态到撤销栈
	h.undoStack = append(h.undoStack, c.Snapshot())

	// 恢复到下一个状态
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = surface.Snapshot{}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	c.Restore(last)

	return true
}

// CanUndo 是否可以撤销
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo 是否可以重做
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Depth 返回撤销栈与重做栈的深度
func (h *History) Depth() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}

// Reset 清空所有历史
func (h *History) Reset() {
	clear(h.undoStack)
	clear(h.redoStack)
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}
