package audio

import "github.com/lixenwraith/metronome/constant"

// GainDB maps a 0-100 volume setting onto clip gain: 0 -> -35dB, 50 -> -15dB, 100 -> +5dB
// Out-of-range volumes are clamped
func GainDB(volume int) float64 {
	volume = clampVolume(volume)
	return float64(volume)*constant.ClipGainRangeDB/100 + constant.ClipGainFloorDB
}

// volumeExponent converts dB into the effects.Volume exponent for base 10
func volumeExponent(db float64) float64 {
	return db / 20
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
