package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/sandbox/event"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const maxTypedChars = 48

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// Overlay is the debug panel in the top-left corner: the object list, the
// physics box height, a line echoing typed characters and a Copy button.
type Overlay struct {
	ui       *ebitenui.UI
	objects  *widget.Text
	position *widget.Text
	typed    *widget.Text

	names []string
	chars []rune
}

func NewOverlay() *Overlay {
	o := &Overlay{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	grey := color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

	label := func(s string, c color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, &face, c))
	}

	title := label("Object List", white)
	o.objects = label("", grey)
	o.position = label("Position: 0.00", white)
	o.typed = label("> ", grey)

	copyBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Copy", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Left: 8, Right: 8, Top: 2, Bottom: 2}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			o.copyObjects()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title, o.objects, copyBtn, o.position, o.typed)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 10, Left: 10, Right: 10, Bottom: 10}),
		)),
	)
	root.AddChild(panel)

	o.ui = &ebitenui.UI{Container: root}
	return o
}

// OnEvent echoes typed characters. The scene forwards every event here.
func (o *Overlay) OnEvent(e event.Event) {
	switch e.Type() {
	case event.TypeChar:
		if ce, ok := e.(event.CharEvent); ok {
			o.chars = appendTyped(o.chars, ce.Char, maxTypedChars)
			o.typed.Label = "> " + string(o.chars)
		}
	}
}

func (o *Overlay) SetObjects(names []string) {
	o.names = append(o.names[:0], names...)
	o.objects.Label = objectListing(o.names)
}

func (o *Overlay) SetPosition(y float32) {
	o.position.Label = fmt.Sprintf("Position: %.2f", y)
}

func (o *Overlay) Update() {
	o.ui.Update()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}

// copyObjects puts the object list on the system clipboard. A missing
// clipboard only logs.
func (o *Overlay) copyObjects() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		log.Printf("overlay: clipboard unavailable: %v", clipboardErr)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(o.names, "\n")))
}

func objectListing(names []string) string {
	if len(names) == 0 {
		return "(empty)"
	}
	return strings.Join(names, "\n")
}

// appendTyped appends r and keeps only the last limit runes. Control
// characters are dropped.
func appendTyped(line []rune, r rune, limit int) []rune {
	if r < 0x20 || r == 0x7f {
		return line
	}
	line = append(line, r)
	if limit > 0 && len(line) > limit {
		line = append(line[:0], line[len(line)-limit:]...)
	}
	return line
}
