package domain

import "time"

// HistoryEntry is an immutable audit record of one status change or
// annotation event. Entries are append-only; insertion order is
// chronological and authoritative.
type HistoryEntry struct {
	ID        string
	AppealID  string
	Status    AppealStatus
	Comment   string
	ActorID   *string
	CreatedAt time.Time
}
