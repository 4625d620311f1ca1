package constants

import "time"

// Render Loop Timing
const (
	// ForestInterval is the frame interval of the full-terminal forest
	ForestInterval = 150 * time.Millisecond

	// SingleInterval is the frame interval of the single inline tree
	SingleInterval = 300 * time.Millisecond

	// FancyInterval is the frame interval of the tree under falling sky
	FancyInterval = 200 * time.Millisecond

	// MinInterval and MaxInterval bound the -interval flag
	MinInterval = 10 * time.Millisecond
	MaxInterval = 5 * time.Second
)

// Layout Limits
const (
	// TreeSpacing is the default column gap between trees
	TreeSpacing = 4

	// MaxSpacing bounds the -spacing flag
	MaxSpacing = 40
)

// Fancy Scene Geometry
const (
	// SkyRows is the number of snow rows above the fancy tree
	SkyRows = 5
)

// Output
const (
	// OutputBufferSize is the initial stream backend write buffer, it grows to fit larger frames
	OutputBufferSize = 64 * 1024

	// EventQueueSize is the tcell event channel capacity
	EventQueueSize = 16
)

// Logging
const (
	// LogFileName is created under the -log-dir directory
	LogFileName = "evergreen.log"

	// LogMaxSizeMB is the rotation threshold
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept
	LogMaxBackups = 3

	// LogMaxAgeDays removes rotated files older than this
	LogMaxAgeDays = 28
)
