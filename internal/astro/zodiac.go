package astro

import (
	"math"

	"Sternentyp/internal/domain/models"
)

// ZodiacSigns are the twelve signs in fixed order, 30° each from 0°.
var ZodiacSigns = []string{
	"Widder", "Stier", "Zwillinge", "Krebs", "Löwe", "Jungfrau",
	"Waage", "Skorpion", "Schütze", "Steinbock", "Wassermann", "Fische",
}

// Elements and modalities indexed by sign.
var signElements = []string{
	"Feuer", "Erde", "Luft", "Wasser", "Feuer", "Erde",
	"Luft", "Wasser", "Feuer", "Erde", "Luft", "Wasser",
}

var signModalities = []string{
	"Kardinal", "Fix", "Veränderlich", "Kardinal", "Fix", "Veränderlich",
	"Kardinal", "Fix", "Veränderlich", "Kardinal", "Fix", "Veränderlich",
}

// ElementOf returns the element of a sign index.
func ElementOf(signIndex int) string { return signElements[signIndex] }

// ModalityOf returns the modality of a sign index.
func ModalityOf(signIndex int) string { return signModalities[signIndex] }

// ToSign maps an ecliptic longitude to its zodiac position.
func ToSign(lon float64) models.ZodiacPosition {
	lon = Normalize(lon)
	idx := int(math.Floor(lon/30)) % 12
	return models.ZodiacPosition{
		Sign:      ZodiacSigns[idx],
		SignIndex: idx,
		Degree:    round6(math.Mod(lon, 30)),
		Longitude: round6(lon),
	}
}

// round6 rounds for display; internal comparisons always use the raw
// longitude, never the rounded one.
func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
