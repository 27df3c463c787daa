package metronome

import "github.com/lixenwraith/metronome/host"

// withEffectsVolume runs play with the shared effects volume set to volume
// The prior value is restored on every exit path, including a panic in play
func withEffectsVolume(prefs host.Preferences, volume int, play func()) {
	prior := prefs.SoundEffectsVolume()
	prefs.SetSoundEffectsVolume(volume)
	defer prefs.SetSoundEffectsVolume(prior)
	play()
}
