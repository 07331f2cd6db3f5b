package session

import "time"

// Notification is a transient on-screen message.
type Notification struct {
	Text      string
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the notification has outlived its duration.
func (n Notification) Expired(now time.Time) bool {
	return now.Sub(n.CreatedAt) > n.Duration
}

// Notifications is the queue of active messages, oldest first.
type Notifications struct {
	duration time.Duration
	items    []Notification
}

// NewNotifications creates an empty queue whose entries last duration.
func NewNotifications(duration time.Duration) *Notifications {
	return &Notifications{duration: duration}
}

// Push appends a message created at now.
func (q *Notifications) Push(text string, now time.Time) {
	q.items = append(q.items, Notification{Text: text, CreatedAt: now, Duration: q.duration})
}

// Prune drops every expired message.
func (q *Notifications) Prune(now time.Time) {
	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// Texts returns the message texts in insertion order.
func (q *Notifications) Texts() []string {
	texts := make([]string, len(q.items))
	for i, n := range q.items {
		texts[i] = n.Text
	}
	return texts
}

// Len returns the number of queued messages.
func (q *Notifications) Len() int {
	return len(q.items)
}

// Reset empties the queue.
func (q *Notifications) Reset() {
	q.items = nil
}
