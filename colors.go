package termcore

// RGB is a resolved, renderer-facing color triple. termcore never
// interprets RGB itself -- color resolution against a palette is the
// renderer's job; this type and ResolveColor exist so a renderer that
// has no opinion of its own can use termcore's reference palette.
type RGB struct {
	R, G, B uint8
}

// DefaultPalette is the standard 256-color palette: 16 named colors
// (0-15), 216 color cube entries (16-231), 24 grayscale steps
// (232-255).
var DefaultPalette [256]RGB

// DefaultForegroundRGB and DefaultBackgroundRGB are the reference
// colors ColorDefaultForeground/ColorDefaultBackground resolve to.
var (
	DefaultForegroundRGB = RGB{229, 229, 229}
	DefaultBackgroundRGB = RGB{0, 0, 0}
)

func init() {
	standard := [16]RGB{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	copy(DefaultPalette[0:16], standard[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = RGB{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
				}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = RGB{gray, gray, gray}
	}
}

// ResolveColor resolves a Color against DefaultPalette. fg selects
// which default (foreground or background) ColorDefaultForeground/
// ColorDefaultBackground fall back to.
func ResolveColor(c Color, fg bool) RGB {
	switch c.Kind {
	case ColorTrueColor:
		return RGB{c.R, c.G, c.B}
	case ColorAnsi, ColorPalette256:
		return DefaultPalette[c.Index]
	case ColorDefaultForeground:
		return DefaultForegroundRGB
	case ColorDefaultBackground:
		return DefaultBackgroundRGB
	default:
		if fg {
			return DefaultForegroundRGB
		}
		return DefaultBackgroundRGB
	}
}

// DimColor returns c scaled toward black by 34%, used to render the
// AttrDim attribute when the renderer has no dedicated dim palette.
func DimColor(c RGB) RGB {
	return RGB{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
	}
}
