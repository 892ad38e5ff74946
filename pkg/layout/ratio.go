package layout

// AspectRatio identifies one of the supported image aspect ratios.
type AspectRatio string

// The closed set of supported aspect ratio identifiers.
const (
	RatioWide     AspectRatio = "16:9"
	RatioPortrait AspectRatio = "9:16"
	RatioSquare   AspectRatio = "1:1"
)

// ratioValues maps each identifier to its numeric width/height ratio.
var ratioValues = map[AspectRatio]float64{
	RatioWide:     1.778,
	RatioPortrait: 0.5625,
	RatioSquare:   1.0,
}

// ResolveRatio maps an aspect ratio identifier to its numeric width/height
// ratio. Unknown or missing identifiers fail soft and return the 16:9 ratio:
// layout must always produce some geometry, so a bad identifier degrades to
// the default instead of raising an error.
func ResolveRatio(id AspectRatio) float64 {
	if v, ok := ratioValues[id]; ok {
		return v
	}
	return ratioValues[RatioWide]
}
