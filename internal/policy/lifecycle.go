package policy

import "time"

// Lifecycle latches a record's terminal timestamp the first time its status
// reaches Terminal. Once set the timestamp never changes or clears.
type Lifecycle struct {
	Terminal string
}

// Apply returns the terminal timestamp the record must carry after moving
// from oldStatus to newStatus. A nil Lifecycle is a no-op.
func (l *Lifecycle) Apply(oldStatus, newStatus string, oldTerminal *time.Time, now time.Time) *time.Time {
	if l == nil {
		return oldTerminal
	}
	if oldTerminal != nil {
		return oldTerminal
	}
	if newStatus == l.Terminal {
		t := now
		return &t
	}
	return nil
}
