//go:build linux && !cgo

package keyer

import "errors"

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for the native sound libraries on Linux.
const AudioAvailable = false

func playSession(*Session) error {
	return errors.New("audio playback requires CGO on linux")
}
