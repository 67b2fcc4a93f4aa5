package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanComplete
	DirQueued
	FileStarted
	FilePacked
	FileSkipped
	BudgetChecked
	PackageComplete
	PackageFailed
)

var typeNames = [...]string{
	ScanStarted:     "ScanStarted",
	ScanComplete:    "ScanComplete",
	DirQueued:       "DirQueued",
	FileStarted:     "FileStarted",
	FilePacked:      "FilePacked",
	FileSkipped:     "FileSkipped",
	BudgetChecked:   "BudgetChecked",
	PackageComplete: "PackageComplete",
	PackageFailed:   "PackageFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the packaging engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // virtual path, "/"-rooted
	Reason    string // why an entry was skipped
	Size      int64  // file size, or blob size for PackageComplete
	Offset    int64  // start offset of a packed file within the blob
	Total     int64  // total files (ScanComplete)
	TotalSize int64  // total bytes (ScanComplete)
	Budget    int64  // memory budget (BudgetChecked)
	Error     error
}
