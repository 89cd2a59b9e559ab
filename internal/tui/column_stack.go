package tui

import (
	"github.com/mmcdole/barcart/internal/tui/components"
)

// ColumnStack is one tab's navigation stack of list columns.
//
//	Home:       [Cocktails A]
//	Categories: [Categories | Ordinary Drink]
//	Favorites:  [Favorites]
//
// The top column is focused. A detail panel, when open, sits beside the
// stack and is not part of it.
type ColumnStack struct {
	columns     []*components.ListColumn
	cursorStack []int // saved cursor positions for back navigation
}

// NewColumnStack creates a stack rooted at root
func NewColumnStack(root *components.ListColumn) *ColumnStack {
	cs := &ColumnStack{}
	cs.Reset(root)
	return cs
}

// Len returns the number of columns in the stack
func (cs *ColumnStack) Len() int {
	return len(cs.columns)
}

// Get returns the column at idx (0 = root)
func (cs *ColumnStack) Get(idx int) *components.ListColumn {
	if idx < 0 || idx >= len(cs.columns) {
		return nil
	}
	return cs.columns[idx]
}

// Root returns the bottom column
func (cs *ColumnStack) Root() *components.ListColumn {
	return cs.Get(0)
}

// Top returns the focused column
func (cs *ColumnStack) Top() *components.ListColumn {
	return cs.Get(len(cs.columns) - 1)
}

// Parent returns the column under the top, or nil at the root
func (cs *ColumnStack) Parent() *components.ListColumn {
	return cs.Get(len(cs.columns) - 2)
}

// Push focuses col on top of the stack and remembers the cursor it covers
func (cs *ColumnStack) Push(col *components.ListColumn) {
	top := cs.Top()
	saved := 0
	if top != nil {
		saved = top.SelectedIndex()
		top.SetFocused(false)
	}
	cs.cursorStack = append(cs.cursorStack, saved)

	col.SetFocused(true)
	cs.columns = append(cs.columns, col)
}

// Pop removes the top column and restores the cursor beneath it.
// The root column is never popped.
func (cs *ColumnStack) Pop() *components.ListColumn {
	if len(cs.columns) <= 1 {
		return nil
	}

	popped := cs.columns[len(cs.columns)-1]
	popped.SetFocused(false)
	cs.columns = cs.columns[:len(cs.columns)-1]

	saved := cs.cursorStack[len(cs.cursorStack)-1]
	cs.cursorStack = cs.cursorStack[:len(cs.cursorStack)-1]

	top := cs.Top()
	top.SetFocused(true)
	top.SetSelectedIndex(saved)

	return popped
}

// Reset drops everything above a new root
func (cs *ColumnStack) Reset(root *components.ListColumn) {
	for _, col := range cs.columns {
		col.SetFocused(false)
	}
	root.SetFocused(true)
	cs.columns = []*components.ListColumn{root}
	cs.cursorStack = nil
}

// CanGoBack returns true if we can navigate back (not at root)
func (cs *ColumnStack) CanGoBack() bool {
	return len(cs.columns) > 1
}

// SetFocused focuses or blurs the top column
func (cs *ColumnStack) SetFocused(focused bool) {
	if top := cs.Top(); top != nil {
		top.SetFocused(focused)
	}
}

// SetSpinner forwards the spinner frame to every column
func (cs *ColumnStack) SetSpinner(frame string) {
	for _, col := range cs.columns {
		col.SetSpinner(frame)
	}
}
