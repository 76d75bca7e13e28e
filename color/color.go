// Package color implements compile time color math used by theme palettes.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"vindur/diag"
)

// Color is an sRGB color with alpha channel.
type Color struct {
	rgb   colorful.Color
	alpha float64
}

var (
	Black = Color{rgb: colorful.Color{}, alpha: 1}
	White = Color{rgb: colorful.Color{R: 1, G: 1, B: 1}, alpha: 1}
)

// Parse reads hex color in one of #rgb, #rgba, #rrggbb or #rrggbbaa forms.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, diag.Errorf(diag.KindArgument, "color %q is not a hex color", s)
	}
	hex := strings.ToLower(s[1:])
	alpha := 1.0
	switch len(hex) {
	case 4:
		a, err := strconv.ParseUint(hex[3:], 16, 8)
		if err != nil {
			return Color{}, diag.Errorf(diag.KindArgument, "color %q is not a hex color", s)
		}
		alpha, hex = float64(a)/15, hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, diag.Errorf(diag.KindArgument, "color %q is not a hex color", s)
		}
		alpha, hex = float64(a)/255, hex[:6]
	}
	rgb, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, diag.Errorf(diag.KindArgument, "color %q is not a hex color", s)
	}
	return Color{rgb: rgb, alpha: alpha}, nil
}

// MustParse is Parse for known good constants.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders color as lower case #rrggbb, or #rrggbbaa when color is not
// opaque.
func (c Color) Hex() string {
	hex := c.rgb.Clamped().Hex()
	if c.alpha >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Round(clamp(c.alpha)*255)))
}

func (c Color) String() string {
	return c.Hex()
}

// Opacity returns alpha channel value.
func (c Color) Opacity() float64 {
	return c.alpha
}

// Alpha returns color with alpha channel replaced.
func (c Color) Alpha(a float64) (Color, error) {
	if err := fraction("alpha", a); err != nil {
		return Color{}, err
	}
	c.alpha = a
	return c, nil
}

// Darker lowers HSL lightness by amount (0..1).
func (c Color) Darker(amount float64) (Color, error) {
	if err := fraction("darker", amount); err != nil {
		return Color{}, err
	}
	return c.lightness(-amount), nil
}

// Lighter raises HSL lightness by amount (0..1).
func (c Color) Lighter(amount float64) (Color, error) {
	if err := fraction("lighter", amount); err != nil {
		return Color{}, err
	}
	return c.lightness(amount), nil
}

func (c Color) lightness(delta float64) Color {
	h, s, l := c.rgb.Hsl()
	c.rgb = colorful.Hsl(h, s, clamp(l+delta)).Clamped()
	return c
}

// Luminance is WCAG relative luminance of the color, alpha is ignored.
func (c Color) Luminance() float64 {
	r, g, b := c.rgb.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is WCAG contrast ratio between two colors, 1 to 21.
func ContrastRatio(a, b Color) float64 {
	la, lb := a.Luminance(), b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsDark reports whether white text reads better on this color than black.
func (c Color) IsDark() bool {
	return ContrastRatio(c, White) > ContrastRatio(c, Black)
}

// Contrast returns black or white, whichever contrasts better with c.
func (c Color) Contrast() Color {
	if c.IsDark() {
		return White
	}
	return Black
}

// OptimalOptions tune Optimal.
type OptimalOptions struct {
	Alpha         float64
	HasAlpha      bool
	Saturation    float64
	HasSaturation bool
}

// Optimal returns readable color on top of c keeping its hue: very light
// tint for dark colors and very dark shade for light ones.
func (c Color) Optimal(opts OptimalOptions) (Color, error) {
	if opts.HasSaturation {
		return Color{}, diag.Errorf(diag.KindArgument, "optimal: saturation option is not supported")
	}
	h, s, _ := c.rgb.Hsl()
	l := 0.12
	if c.IsDark() {
		l = 0.94
	}
	out := Color{rgb: colorful.Hsl(h, s, l).Clamped(), alpha: 1}
	if opts.HasAlpha {
		return out.Alpha(opts.Alpha)
	}
	return out, nil
}

// CheckFraction validates color function argument which must be within
// 0..1 range.
func CheckFraction(op string, v float64) error {
	return fraction(op, v)
}

func fraction(op string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return diag.Errorf(diag.KindArgument, "%s: value %s is outside of 0..1 range", op, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
