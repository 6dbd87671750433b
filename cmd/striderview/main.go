package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Versifine/strider/internal/camera"
	"github.com/Versifine/strider/internal/collision"
	"github.com/Versifine/strider/internal/config"
	"github.com/Versifine/strider/internal/motion"
	"github.com/Versifine/strider/internal/sim"
)

const (
	screenWidth   = 1280
	screenHeight  = 720
	pixelsPerUnit = 40.0
	tickDt        = 1.0 / 60.0
)

// Game renders the simulation from the side (world X right, world Y up) so
// jumps, slides and the camera boom are visible at a glance.
type Game struct {
	world *collision.BoxWorld
	actor *sim.Actor
	cam   *camera.FollowCamera

	crouchHeld bool
	spawn      mgl64.Vec3
	state      sim.State
}

func NewGame(cfg *config.Config) *Game {
	boxes := make([]collision.Box, 0, len(cfg.World.Boxes))
	for _, b := range cfg.World.Boxes {
		boxes = append(boxes, collision.Box{Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max)})
	}
	world := collision.NewBoxWorld(boxes)

	g := &Game{
		world: world,
		spawn: mgl64.Vec3(cfg.World.Spawn),
	}
	g.actor = sim.New(world, cfg.Motion, g.spawn)
	g.cam = camera.NewFollowCamera(cfg.Camera, world)
	g.cam.SetFollowTarget(g.actor)
	g.state = g.actor.State()
	return g
}

func (g *Game) Update() error {
	in := motion.Intent{CameraRotation: g.cam.Rotation()}

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveForward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveForward -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveRight += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveRight -= 1
	}
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.crouchHeld = !g.crouchHeld
		if g.crouchHeld {
			in.CrouchPressed = true
		} else {
			in.CrouchReleased = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.actor.SetPosition(g.spawn)
	}

	var lookX, lookY, zoom float64
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		lookX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		lookX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		lookY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		lookY -= 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		zoom += 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		zoom -= 1
	}

	g.state = g.actor.Tick(in, tickDt)
	g.cam.Update(lookX, lookY, zoom, tickDt)
	return nil
}

// toScreen maps a world point onto the side view, tracking the actor
// horizontally.
func (g *Game) toScreen(p mgl64.Vec3) (float32, float32) {
	x := screenWidth/2 + (p.X()-g.state.Position.X())*pixelsPerUnit
	y := screenHeight*0.7 - p.Y()*pixelsPerUnit
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	for _, b := range g.world.Boxes() {
		x0, y0 := g.toScreen(mgl64.Vec3{b.Min.X(), b.Max.Y(), 0})
		x1, y1 := g.toScreen(mgl64.Vec3{b.Max.X(), b.Min.Y(), 0})
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, colornames.Lightgrey, false)
	}

	// Actor capsule, squashed by the crouch visual scale.
	capsule := g.world.Capsule()
	hw := float32(capsule.Radius * pixelsPerUnit)
	hh := float32(capsule.Height * g.state.VisualScale.Y() * pixelsPerUnit)
	ax, ay := g.toScreen(g.state.Position)
	bodyColor := colornames.Crimson
	if g.state.Grounded {
		bodyColor = colornames.Orange
	}
	vector.DrawFilledRect(screen, ax-hw, ay-hh, 2*hw, hh, bodyColor, false)

	// Velocity vector from the capsule center.
	center := g.state.Position.Add(mgl64.Vec3{0, capsule.Height * g.state.VisualScale.Y() / 2, 0})
	vx, vy := g.toScreen(center)
	tx, ty := g.toScreen(center.Add(g.state.Velocity.Mul(0.25)))
	vector.StrokeLine(screen, vx, vy, tx, ty, 2, colornames.Yellow, false)

	// Camera eye and boom.
	eye, _, _ := g.actor.FollowPoint()
	ex, ey := g.toScreen(eye)
	cx, cy := g.toScreen(g.cam.Position())
	boomColor := colornames.Skyblue
	if g.cam.Obstructed() {
		boomColor = colornames.Red
	}
	vector.StrokeLine(screen, ex, ey, cx, cy, 2, boomColor, false)
	vector.DrawFilledCircle(screen, cx, cy, 5, boomColor, false)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"pos (%.2f %.2f %.2f)  vel %.2f  grounded %t  crouch %t  cam dist %.2f\nWASD move  Space jump  C crouch  arrows orbit  -/= zoom  R respawn",
		g.state.Position.X(), g.state.Position.Y(), g.state.Position.Z(),
		g.state.Velocity.Len(), g.state.Grounded, g.state.Crouching, g.cam.Distance(),
	))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("strider")

	if err := ebiten.RunGame(NewGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
