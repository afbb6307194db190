package bargraph

import "image/color"

// Color is the displayable state of one bar. Every bar has a red and a green
// LED plane; Yellow lights both. The zero value is Off, so an unset Color
// clears the bar.
type Color int

const (
	Off Color = iota
	Red
	Green
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "off"
	}
}

// ToRGB maps a bar color to a renderable pixel for console simulation.
func (c Color) ToRGB() color.NRGBA {
	switch c {
	case Red:
		return color.NRGBA{R: 255, A: 255}
	case Green:
		return color.NRGBA{G: 255, A: 255}
	case Yellow:
		return color.NRGBA{R: 255, G: 255, A: 255}
	default:
		return color.NRGBA{A: 255}
	}
}
