package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultBellEvery rings the chime every N frames
	DefaultBellEvery = 40
)

// Bell Sound Timing
const (
	BellSoundDuration           = 1200 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 1100 * time.Millisecond
	BellSoundOvertoneRelease    = 400 * time.Millisecond
)

// Bell Sound Pitch
const (
	// BellFundamental is E6, the partials follow a struck bell's inharmonic ratios
	BellFundamental = 1318.51
	BellVolume      = 0.2
)
