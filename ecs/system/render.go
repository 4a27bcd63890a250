package system

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"dicetable/ecs"
	"dicetable/ecs/component"
)

const (
	fovDegrees = 35.0
	nearPlane  = 0.1
	farPlane   = 100.0
)

var (
	feltColor = color.NRGBA{R: 30, G: 34, B: 30, A: 255}
	railColor = color.NRGBA{R: 255, G: 83, B: 0, A: 255}
	dieColor  = color.NRGBA{R: 235, G: 233, B: 226, A: 255}
	bgColor   = color.NRGBA{R: 16, G: 16, B: 20, A: 255}
)

var lightDir = mgl64.Vec3{-0.4, 0.8, 0.45}.Normalize()

// RenderSystem projects the table, rim, and dice through the camera rig and
// paints filled quads back-to-front.
type RenderSystem struct {
	camEntity ecs.Entity
	white     *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type quad struct {
	pts   [4]mgl64.Vec3
	clr   color.NRGBA
	depth float64
}

func (r *RenderSystem) Update(w *ecs.World) {
	// Rendering happens in Draw; the system participates in the world only so
	// its camera lookup stays warm.
	if r == nil || w == nil {
		return
	}
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraRigComponent); ok {
			r.camEntity = camEntity
		}
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(bgColor)

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraRigComponent)
		if !ok {
			return
		}
		r.camEntity = camEntity
	}
	rig, ok := ecs.Get(w, r.camEntity, component.CameraRigComponent)
	if !ok {
		return
	}
	camT, ok := ecs.Get(w, r.camEntity, component.Transform3DComponent)
	if !ok {
		return
	}

	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())

	view := mgl64.HomogRotate3DX(-rig.Pitch).
		Mul4(mgl64.HomogRotate3DY(-rig.Yaw)).
		Mul4(mgl64.Translate3D(-camT.Position.X(), -camT.Position.Y(), -camT.Position.Z()))
	proj := mgl64.Perspective(mgl64.DegToRad(fovDegrees), sw/sh, nearPlane, farPlane)

	var quads []quad
	quads = append(quads, r.tableQuads(w)...)
	quads = append(quads, r.diceQuads(w)...)

	visible := make([]quad, 0, len(quads))
	for _, q := range quads {
		vq, ok := toView(view, q)
		if ok {
			visible = append(visible, vq)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].depth > visible[j].depth
	})

	for _, q := range visible {
		r.fillQuad(screen, proj, q, sw, sh)
	}
}

func (r *RenderSystem) tableQuads(w *ecs.World) []quad {
	tableEnt, ok := ecs.First(w, component.TableComponent)
	if !ok {
		return nil
	}
	t, ok := ecs.Get(w, tableEnt, component.TableComponent)
	if !ok {
		return nil
	}

	out := []quad{{
		pts: [4]mgl64.Vec3{
			{-t.HalfX, 0, -t.HalfZ},
			{t.HalfX, 0, -t.HalfZ},
			{t.HalfX, 0, t.HalfZ},
			{-t.HalfX, 0, t.HalfZ},
		},
		clr: feltColor,
	}}

	th := t.WallThickness
	wh := t.WallHeight
	walls := []struct {
		center mgl64.Vec3
		half   mgl64.Vec3
	}{
		{mgl64.Vec3{-t.HalfX - th/2, wh / 2, 0}, mgl64.Vec3{th / 2, wh / 2, t.HalfZ + th}},
		{mgl64.Vec3{t.HalfX + th/2, wh / 2, 0}, mgl64.Vec3{th / 2, wh / 2, t.HalfZ + th}},
		{mgl64.Vec3{0, wh / 2, -t.HalfZ - th/2}, mgl64.Vec3{t.HalfX + th, wh / 2, th / 2}},
		{mgl64.Vec3{0, wh / 2, t.HalfZ + th/2}, mgl64.Vec3{t.HalfX + th, wh / 2, th / 2}},
	}
	for _, wall := range walls {
		out = append(out, boxQuads(wall.center, wall.half, mgl64.Ident3(), railColor)...)
	}
	return out
}

func (r *RenderSystem) diceQuads(w *ecs.World) []quad {
	var out []quad
	ecs.ForEach(w, component.DieComponent, func(e ecs.Entity, die *component.Die) {
		t, ok := ecs.Get(w, e, component.Transform3DComponent)
		if !ok {
			return
		}
		rot := mgl64.Rotate3DY(t.Yaw + t.Tumble.Y()).
			Mul3(mgl64.Rotate3DX(t.Tumble.X())).
			Mul3(mgl64.Rotate3DZ(t.Tumble.Z()))
		h := die.HalfExtent
		out = append(out, boxQuads(t.Position, mgl64.Vec3{h, h, h}, rot, dieColor)...)
	})
	return out
}

// cube corners indexed by (x<<2 | y<<1 | z) sign bits.
var cubeFaces = [6][4]int{
	{1, 5, 7, 3}, // +z
	{4, 0, 2, 6}, // -z
	{5, 4, 6, 7}, // +x
	{0, 1, 3, 2}, // -x
	{2, 3, 7, 6}, // +y
	{0, 4, 5, 1}, // -y
}

func boxQuads(center, half mgl64.Vec3, rot mgl64.Mat3, clr color.NRGBA) []quad {
	var corners [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		sx, sy, sz := -1.0, -1.0, -1.0
		if i&4 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&1 != 0 {
			sz = 1
		}
		local := mgl64.Vec3{sx * half.X(), sy * half.Y(), sz * half.Z()}
		corners[i] = center.Add(rot.Mul3x1(local))
	}

	out := make([]quad, 0, len(cubeFaces))
	for _, f := range cubeFaces {
		out = append(out, quad{
			pts: [4]mgl64.Vec3{corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]},
			clr: clr,
		})
	}
	return out
}

// toView moves a quad into view space, shades it, and rejects quads that
// cross the near plane.
func toView(view mgl64.Mat4, q quad) (quad, bool) {
	normal := q.pts[1].Sub(q.pts[0]).Cross(q.pts[2].Sub(q.pts[0]))
	shade := 0.45
	if l := normal.Len(); l > 1e-12 {
		shade = 0.45 + 0.55*math.Abs(normal.Mul(1/l).Dot(lightDir))
	}
	q.clr = color.NRGBA{
		R: uint8(float64(q.clr.R) * shade),
		G: uint8(float64(q.clr.G) * shade),
		B: uint8(float64(q.clr.B) * shade),
		A: q.clr.A,
	}

	depth := 0.0
	for i, p := range q.pts {
		v := view.Mul4x1(p.Vec4(1))
		if v.Z() > -nearPlane {
			return q, false
		}
		q.pts[i] = v.Vec3()
		depth += -v.Z()
	}
	q.depth = depth / float64(len(q.pts))
	return q, true
}

func (r *RenderSystem) fillQuad(screen *ebiten.Image, proj mgl64.Mat4, q quad, sw, sh float64) {
	var vs [4]ebiten.Vertex
	for i, p := range q.pts {
		clip := proj.Mul4x1(p.Vec4(1))
		if clip.W() == 0 {
			return
		}
		ndcX := clip.X() / clip.W()
		ndcY := clip.Y() / clip.W()
		vs[i] = ebiten.Vertex{
			DstX:   float32((ndcX + 1) / 2 * sw),
			DstY:   float32((1 - ndcY) / 2 * sh),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(q.clr.R) / 255,
			ColorG: float32(q.clr.G) / 255,
			ColorB: float32(q.clr.B) / 255,
			ColorA: float32(q.clr.A) / 255,
		}
	}

	indices := []uint16{0, 1, 2, 0, 2, 3}
	screen.DrawTriangles(vs[:], indices, r.whitePixel(), &ebiten.DrawTrianglesOptions{})
}

func (r *RenderSystem) whitePixel() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}
