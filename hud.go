package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"dicetable/common"
)

const (
	meterWidth  = 200
	meterHeight = 20
	hudPadding  = 20
)

// HUD owns the power meter and the control hint. It implements the throw
// system's UIFill.
type HUD struct {
	ui    *ebitenui.UI
	ratio float64
}

// NewHUD builds the widget tree: a hint line in the top-left and the meter
// track in the bottom-left. The moving fill is drawn over the track each
// frame since its width changes continuously.
func NewHUD() *HUD {
	trackImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	hint := widget.NewText(
		widget.TextOpts.Text("hold right mouse to look, hold space to charge, release to throw", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)

	track := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(trackImg),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(meterWidth, meterHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: hudPadding, Bottom: hudPadding, Left: hudPadding, Right: hudPadding}),
		)),
	)
	root.AddChild(hint)
	root.AddChild(track)

	return &HUD{ui: &ebitenui.UI{Container: root}}
}

// SetFillRatio updates the power meter; the value is clamped to [0, 1].
func (h *HUD) SetFillRatio(r float64) {
	if h == nil {
		return
	}
	h.ratio = common.Clamp(r, 0, 1)
}

func (h *HUD) Update() {
	if h == nil || h.ui == nil {
		return
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.ui == nil || screen == nil {
		return
	}
	h.ui.Draw(screen)

	if h.ratio > 0 {
		sh := screen.Bounds().Dy()
		vector.FillRect(screen,
			hudPadding, float32(sh-hudPadding-meterHeight),
			float32(h.ratio*meterWidth), meterHeight,
			color.NRGBA{R: 0x00, G: 0xcc, B: 0x00, A: 0xff}, false)
	}
}
