package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Material describes how a mesh is filled. Texture is borrowed from the
// Resources table that created it.
type Material struct {
	Color       color.NRGBA
	Texture     *ebiten.Image
	VertexColor bool
	UVScale     mgl32.Vec2
	UVOffset    mgl32.Vec2
}

var defaultMaterial = NewMaterial(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil, true)

func NewMaterial(c color.Color, tex *ebiten.Image, vertexColor bool) *Material {
	return &Material{
		Color:       color.NRGBAModel.Convert(c).(color.NRGBA),
		Texture:     tex,
		VertexColor: vertexColor,
		UVScale:     mgl32.Vec2{1, 1},
	}
}

func (m *Material) tint() mgl32.Vec4 {
	return mgl32.Vec4{
		float32(m.Color.R) / 0xff,
		float32(m.Color.G) / 0xff,
		float32(m.Color.B) / 0xff,
		float32(m.Color.A) / 0xff,
	}
}

// ParseColor resolves an SVG color name ("red", "steelblue") or a hex string
// ("#rrggbb", "#rrggbbaa").
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	if strings.HasPrefix(s, "#") {
		var r, g, b, a uint8
		a = 0xff
		switch len(s) {
		case 7:
			if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
				return color.NRGBA{}, fmt.Errorf("render: parse color %q: %w", s, err)
			}
		case 9:
			if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
				return color.NRGBA{}, fmt.Errorf("render: parse color %q: %w", s, err)
			}
		default:
			return color.NRGBA{}, fmt.Errorf("render: parse color %q: bad length", s)
		}
		return color.NRGBA{R: r, G: g, B: b, A: a}, nil
	}

	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("render: unknown color %q", s)
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA), nil
}
