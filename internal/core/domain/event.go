package domain

import "time"

// BundleEventKind is the kind of a watch-mode engine event.
type BundleEventKind uint8

const (
	// EventStart is emitted when a build begins.
	EventStart BundleEventKind = iota
	// EventEnd is emitted when a build has been written.
	EventEnd
	// EventError is emitted when a build fails.
	EventError
	// EventIdle is emitted after a build settles and the engine waits for changes.
	EventIdle
	// EventChange is emitted for each changed source file.
	EventChange
)

// ChangeKind describes a changed file.
type ChangeKind string

const (
	ChangeUpdated ChangeKind = "changed"
	ChangeRemoved ChangeKind = "removed"
	ChangeAdded   ChangeKind = "added"
)

// BundleEvent is one event of a watch session.
type BundleEvent struct {
	Kind     BundleEventKind
	Duration time.Duration
	Err      error
	Path     string
	Change   ChangeKind
	// Files are the chunks written by the build, set on EventEnd.
	Files []OutputFile
	Cache BuildCache
}

// OutputFile is a written output file.
type OutputFile struct {
	Path string
	Size int
}

// BuildResult is the outcome of a one-shot build.
type BuildResult struct {
	Files    []OutputFile
	Duration time.Duration
	Cache    BuildCache
}

// BuildCache is an engine-owned handle kept between builds of one task.
type BuildCache interface {
	Release()
}
