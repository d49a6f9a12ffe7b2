package comfort

import "math"

// referenceSize is the room size (m²) the acceptable baselines were tuned for.
const referenceSize = 70.0

// AcceptableValues holds the per-room reference points readings are
// classified against. Zero means unset: that metric is never classified.
type AcceptableValues struct {
	CO2         float64 `gorm:"column:acceptable_co2;default:0" json:"co2"`
	Decibel     float64 `gorm:"column:acceptable_decibel;default:0" json:"decibel"`
	Humidity    float64 `gorm:"column:acceptable_humidity;default:0" json:"humidity"`
	Temperature float64 `gorm:"column:acceptable_temperature;default:0" json:"temperature"`
}

// ComputeAcceptable derives acceptable values from the room size in m².
// Computed once at room creation; later size edits do not recompute so
// administrator overrides are never clobbered.
//
// CO₂ scales sublinearly with size (better dilution in larger rooms),
// floored at 600 ppm so tiny rooms keep a realistic bar. Background noise
// barely depends on size and is clamped to 30-40 dB(A). Humidity and
// temperature are size-invariant baselines.
func ComputeAcceptable(size float64) AcceptableValues {
	ratio := size / referenceSize

	co2 := math.Max(600, math.Round(800*math.Pow(ratio, 0.7)))

	decibel := math.Round(35 + (ratio-1)*2)
	if decibel < 30 {
		decibel = 30
	} else if decibel > 40 {
		decibel = 40
	}

	return AcceptableValues{
		CO2:         co2,
		Decibel:     decibel,
		Humidity:    45,
		Temperature: 21,
	}
}
