// Package history records the images the user has viewed so they can step back
// and forward through them, independently of the directory order.
package history

import "slices"

// Trail is a bounded back/forward list of viewed image paths.
type Trail struct {
	visits   []string
	cursor   int
	capacity int
}

// NewTrail creates a Trail holding at most capacity entries.
// A capacity of 0 or less disables recording.
func NewTrail(capacity int) *Trail {
	return &Trail{
		visits:   make([]string, 0, max(capacity, 0)),
		cursor:   -1,
		capacity: max(capacity, 0),
	}
}

// Enabled reports whether the trail records anything.
func (t *Trail) Enabled() bool { return t.capacity > 0 }

// Len returns the number of recorded visits.
func (t *Trail) Len() int { return len(t.visits) }

// Current returns the visit under the cursor.
func (t *Trail) Current() (string, bool) {
	if t.cursor < 0 {
		return "", false
	}
	return t.visits[t.cursor], true
}

// Visit records path as the newest entry and drops the entries ahead of the
// cursor. Visiting the entry under the cursor again changes nothing, so
// reopening an image reached with Back keeps the forward entries.
func (t *Trail) Visit(path string) {
	if !t.Enabled() || path == "" {
		return
	}
	if t.cursor >= 0 && t.visits[t.cursor] == path {
		return
	}
	t.visits = append(t.visits[:t.cursor+1], path)
	if over := len(t.visits) - t.capacity; over > 0 {
		t.visits = slices.Delete(t.visits, 0, over)
	}
	t.cursor = len(t.visits) - 1
}

// Back moves the cursor to the previous visit and returns it.
func (t *Trail) Back() (string, bool) {
	if t.cursor <= 0 {
		return "", false
	}
	t.cursor--
	return t.visits[t.cursor], true
}

// Forward moves the cursor to the next visit and returns it.
func (t *Trail) Forward() (string, bool) {
	if t.cursor < 0 || t.cursor >= len(t.visits)-1 {
		return "", false
	}
	t.cursor++
	return t.visits[t.cursor], true
}

// CanGoBack reports whether Back would succeed.
func (t *Trail) CanGoBack() bool { return t.cursor > 0 }

// CanGoForward reports whether Forward would succeed.
func (t *Trail) CanGoForward() bool { return t.cursor >= 0 && t.cursor < len(t.visits)-1 }

// Forget removes every visit of path, for instance after the file vanished
// from disk. When the visit under the cursor is removed the cursor falls back
// to the visit before it.
func (t *Trail) Forget(path string) {
	if len(t.visits) == 0 {
		return
	}
	cursor := t.cursor
	kept := t.visits[:0]
	for i, p := range t.visits {
		if p != path {
			kept = append(kept, p)
			continue
		}
		if i <= t.cursor {
			cursor--
		}
	}
	t.visits = kept
	if len(t.visits) == 0 {
		t.cursor = -1
		return
	}
	t.cursor = max(0, min(cursor, len(t.visits)-1))
}

// Reset drops all visits.
func (t *Trail) Reset() {
	t.visits = t.visits[:0]
	t.cursor = -1
}
