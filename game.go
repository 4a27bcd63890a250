package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dicetable/config"
	"dicetable/console"
	"dicetable/ecs"
	"dicetable/ecs/entity"
	"dicetable/ecs/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool

	world   *ecs.World
	render  *system.RenderSystem
	hud     *HUD
	console *console.Console

	tuning  *config.Store
	watcher *config.Watcher
	cfgPath string
}

func NewGame(cfgPath string, debug bool) (*Game, error) {
	tuning := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		tuning = loaded
	}
	store := config.NewStore(tuning)

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld(store))

	if _, err := entity.NewCamera(world, mgl64.Vec3{-6, 4.5, -3}, mgl64.Vec3{}); err != nil {
		return nil, fmt.Errorf("game: build camera: %w", err)
	}
	if _, err := entity.NewTable(world, tuning.Table); err != nil {
		return nil, fmt.Errorf("game: build table: %w", err)
	}
	if _, err := entity.NewThrowControl(world, tuning); err != nil {
		return nil, fmt.Errorf("game: build throw control: %w", err)
	}

	hud := NewHUD()
	render := system.NewRenderSystem()
	clock := system.TickClock{}

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewCameraRigSystem(store, system.CaptureCursor{}))
	world.AddSystem(system.NewThrowSystem(store, hud, clock))
	world.AddSystem(system.NewPhysicsSystem(store, clock))
	world.AddSystem(render)

	g := &Game{
		debug:   debug,
		world:   world,
		render:  render,
		hud:     hud,
		console: console.New(store),
		tuning:  store,
		cfgPath: cfgPath,
	}

	if cfgPath != "" {
		watcher, err := config.NewWatcher(cfgPath)
		if err != nil {
			log.Printf("game: tuning watcher disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyBackquote) {
		g.console.Toggle()
	}
	if g.console.Open() {
		// The world pauses while the console is up so typing doesn't drive
		// the charge or the camera.
		g.console.Append(ebiten.AppendInputChars(nil))
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.console.Backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.console.Submit()
		}
		g.hud.Update()
		return nil
	}

	g.world.Update()
	g.hud.Update()

	for _, evt := range g.world.Events().Drain() {
		if evt.Type != ecs.EventThrow {
			continue
		}
		if throw, ok := evt.Data.(ecs.ThrowEvent); ok {
			log.Printf("throw: charge=%.1f origin=(%.2f, %.2f, %.2f)",
				throw.Charge, throw.Origin.X(), throw.Origin.Y(), throw.Origin.Z())
		}
	}

	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			loaded, err := config.LoadFile(g.cfgPath)
			if err != nil {
				log.Printf("game: reload tuning %s: %v", name, err)
				continue
			}
			g.tuning.Replace(loaded)
			log.Printf("game: reloaded tuning from %s", name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: tuning watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)

	if g.console.Open() {
		ebitenutil.DebugPrintAt(screen, g.console.Line(), hudPadding, 40)
		if res := g.console.Result(); res != "" {
			ebitenutil.DebugPrintAt(screen, res, hudPadding, 56)
		}
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
