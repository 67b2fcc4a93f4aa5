package ui

import "github.com/bamsammich/lovepack/internal/event"

// Event is the engine's progress event.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted     = event.ScanStarted
	ScanComplete    = event.ScanComplete
	DirQueued       = event.DirQueued
	FileStarted     = event.FileStarted
	FilePacked      = event.FilePacked
	FileSkipped     = event.FileSkipped
	BudgetChecked   = event.BudgetChecked
	PackageComplete = event.PackageComplete
	PackageFailed   = event.PackageFailed
)
