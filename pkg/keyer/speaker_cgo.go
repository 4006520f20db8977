//go:build (linux && cgo) || windows || darwin

package keyer

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

var (
	speakerOnce sync.Once
	speakerErr  error
)

// playSession hands the session to the speaker and blocks until the
// last sample has been pulled.
func playSession(s *Session) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(beep.SampleRate(SampleRate), bufferFrames)
	})
	if speakerErr != nil {
		return fmt.Errorf("speaker init: %w", speakerErr)
	}

	log.Debug("starting playback",
		"symbols", len(s.stream),
		"dotSamples", s.dotLen,
		"gapSamples", s.gapLen,
		"leadInSamples", s.leadIn)

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
