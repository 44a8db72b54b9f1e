// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the bounded input history used for Up/Down recall.
//
// A Buffer keeps submitted input strings in order, drops the oldest entry once
// capacity is exceeded, and never stores the same string twice in a row. A
// cursor in [0, Len()] tracks browsing; Len() means "not browsing".
//
// # Usage
//
//	buf := history.New(history.DefaultCapacity)
//	buf.Add("/memory search embeddings")
//	if prev, ok := buf.Previous(); ok {
//	    input.SetValue(prev)
//	}
package history

import "sync"

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 100

// Buffer is a capacity-bounded, order-preserving log of submitted inputs.
type Buffer struct {
	mu       sync.Mutex
	entries  []string
	cursor   int
	capacity int
}

// New creates an empty buffer. A non-positive capacity uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Add appends entry unless it equals the most recent entry, evicts the oldest
// entry past capacity, and resets the cursor to "not browsing".
func (b *Buffer) Add(entry string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.entries); n == 0 || b.entries[n-1] != entry {
		b.entries = append(b.entries, entry)
		if len(b.entries) > b.capacity {
			// Copy down instead of reslicing so the backing array doesn't grow forever.
			copy(b.entries, b.entries[len(b.entries)-b.capacity:])
			b.entries = b.entries[:b.capacity]
		}
	}
	b.cursor = len(b.entries)
}

// Previous moves the cursor one entry back (clamped at the oldest) and
// returns that entry. It returns ("", false) when the buffer is empty.
func (b *Buffer) Previous() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == 0 {
		return "", false
	}
	if b.cursor > 0 {
		b.cursor--
	}
	return b.entries[b.cursor], true
}

// Next moves the cursor one entry forward and returns that entry. Moving past
// the most recent entry ends browsing: the cursor resets to Len() and the
// empty string is returned so the caller can clear its input.
func (b *Buffer) Next() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor >= len(b.entries)-1 {
		b.cursor = len(b.entries)
		return ""
	}
	b.cursor++
	return b.entries[b.cursor]
}

// Browsing reports whether the cursor currently points at an entry.
func (b *Buffer) Browsing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor < len(b.entries)
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Len returns the number of stored entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Capacity returns the maximum number of entries kept.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Entries returns a copy of the stored entries, oldest first.
func (b *Buffer) Entries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Last returns up to n most recent entries, oldest first.
func (b *Buffer) Last(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]string, n)
	copy(out, b.entries[len(b.entries)-n:])
	return out
}

// Reset leaves browsing mode without changing the stored entries.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = len(b.entries)
}
