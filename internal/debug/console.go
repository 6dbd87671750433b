package debug

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"github.com/Versifine/strider/internal/motion"
	"github.com/Versifine/strider/internal/sim"
)

const (
	defaultTickInterval = 50 * time.Millisecond
	defaultMovePulse    = 180 * time.Millisecond
	lookStep            = 1.0
	zoomStep            = 1.0
)

type ControlledActor interface {
	Tick(in motion.Intent, dt float64) sim.State
	State() sim.State
	SetPosition(pos mgl64.Vec3)
	AddImpulse(v mgl64.Vec3)
}

type OrbitCamera interface {
	Update(lookX, lookY, zoom, dt float64)
	Rotation() mgl64.Quat
	Position() mgl64.Vec3
	Distance() float64
	Obstructed() bool
}

// Console drives the actor and camera from a raw terminal: WASD movement
// pulses, space to jump, C to crouch, arrows to orbit the camera, and a
// colon command mode for teleports and state dumps.
type Console struct {
	actor        ControlledActor
	camera       OrbitCamera
	tickInterval time.Duration
	movePulse    time.Duration

	mu            sync.Mutex
	forwardUntil  time.Time
	backwardUntil time.Time
	leftUntil     time.Time
	rightUntil    time.Time
	jumpQueued    bool
	crouchHeld    bool
	crouchEdge    int // +1 pressed, -1 released, 0 none
	lookX         float64
	lookY         float64
	zoom          float64
	commandMode   bool
	commandBuf    []rune
	statusWidth   int
}

func NewConsole(actor ControlledActor, camera OrbitCamera) *Console {
	return &Console{
		actor:        actor,
		camera:       camera,
		tickInterval: defaultTickInterval,
		movePulse:    defaultMovePulse,
	}
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.actor == nil {
		return fmt.Errorf("console actor is nil")
	}
	if c.camera == nil {
		return fmt.Errorf("console camera is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Print("\r\n")
	}()

	fmt.Println("[debug] console started (W/A/S/D pulse, Space jump, C crouch, arrows orbit, -/= zoom, X, :)")
	c.renderStatusLine()

	go c.tickLoop(ctx)

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()
	dt := c.tickInterval.Seconds()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			in, lookX, lookY, zoom := c.consumeInput()
			c.actor.Tick(in, dt)
			c.camera.Update(lookX, lookY, zoom, dt)
			c.renderStatusLine()
		}
	}
}

// consumeInput snapshots held movement and drains the one-shot edges
// (jump, crouch transitions, look and zoom deltas) for this tick.
func (c *Console) consumeInput() (motion.Intent, float64, float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expirePulsesLocked(time.Now())

	in := motion.Intent{CameraRotation: c.camera.Rotation()}
	if !c.forwardUntil.IsZero() {
		in.MoveForward += 1
	}
	if !c.backwardUntil.IsZero() {
		in.MoveForward -= 1
	}
	if !c.rightUntil.IsZero() {
		in.MoveRight += 1
	}
	if !c.leftUntil.IsZero() {
		in.MoveRight -= 1
	}

	in.JumpPressed = c.jumpQueued
	c.jumpQueued = false
	in.CrouchPressed = c.crouchEdge > 0
	in.CrouchReleased = c.crouchEdge < 0
	c.crouchEdge = 0

	lookX, lookY, zoom := c.lookX, c.lookY, c.zoom
	c.lookX, c.lookY, c.zoom = 0, 0, 0
	return in, lookX, lookY, zoom
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W':
		c.pulse(&c.forwardUntil, &c.backwardUntil)
	case 's', 'S':
		c.pulse(&c.backwardUntil, &c.forwardUntil)
	case 'a', 'A':
		c.pulse(&c.leftUntil, &c.rightUntil)
	case 'd', 'D':
		c.pulse(&c.rightUntil, &c.leftUntil)
	case ' ':
		c.mu.Lock()
		c.jumpQueued = true
		c.mu.Unlock()
	case 'c', 'C':
		c.toggleCrouch()
	case '-', '_':
		c.addZoom(zoomStep)
	case '=', '+':
		c.addZoom(-zoomStep)
	case 'x', 'X':
		c.clearInput()
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		c.mu.Lock()
		switch arrow {
		case 'D': // left
			c.lookX -= lookStep
		case 'C': // right
			c.lookX += lookStep
		case 'A': // up
			c.lookY += lookStep
		case 'B': // down
			c.lookY -= lookStep
		}
		c.mu.Unlock()
	}
	c.renderStatusLine()
}

func (c *Console) pulse(set, clear *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*set = time.Now().Add(c.movePulse)
	*clear = time.Time{}
}

func (c *Console) expirePulsesLocked(now time.Time) {
	for _, t := range []*time.Time{&c.forwardUntil, &c.backwardUntil, &c.leftUntil, &c.rightUntil} {
		if !t.IsZero() && !now.Before(*t) {
			*t = time.Time{}
		}
	}
}

func (c *Console) toggleCrouch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.crouchHeld = !c.crouchHeld
	if c.crouchHeld {
		c.crouchEdge = 1
	} else {
		c.crouchEdge = -1
	}
}

func (c *Console) addZoom(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom += delta
}

func (c *Console) clearInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forwardUntil = time.Time{}
	c.backwardUntil = time.Time{}
	c.leftUntil = time.Time{}
	c.rightUntil = time.Time{}
	c.jumpQueued = false
	c.lookX, c.lookY, c.zoom = 0, 0, 0
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Print("\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Print("\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Print("\r\n[debug] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s ", buf)
		fmt.Printf("\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Printf("\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		st := c.actor.State()
		fmt.Printf("[debug] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) grounded=%t crouch=%t\r\n",
			st.Position.X(), st.Position.Y(), st.Position.Z(),
			st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z(),
			st.Grounded, st.Crouching,
		)
	case "cam":
		pos := c.camera.Position()
		fmt.Printf("[debug] camera pos=(%.3f,%.3f,%.3f) dist=%.2f obstructed=%t\r\n",
			pos.X(), pos.Y(), pos.Z(), c.camera.Distance(), c.camera.Obstructed())
	case "tp":
		v, ok := parseVec3(parts[1:])
		if !ok {
			fmt.Printf("[debug] usage: :tp <x> <y> <z>\r\n")
			return
		}
		c.actor.SetPosition(v)
		fmt.Printf("[debug] teleported to (%.3f, %.3f, %.3f)\r\n", v.X(), v.Y(), v.Z())
	case "impulse":
		v, ok := parseVec3(parts[1:])
		if !ok {
			fmt.Printf("[debug] usage: :impulse <x> <y> <z>\r\n")
			return
		}
		c.actor.AddImpulse(v)
		fmt.Printf("[debug] impulse (%.3f, %.3f, %.3f) queued\r\n", v.X(), v.Y(), v.Z())
	default:
		fmt.Printf("[debug] unknown command: %s\r\n", parts[0])
	}
}

func parseVec3(parts []string) (mgl64.Vec3, bool) {
	if len(parts) != 3 {
		return mgl64.Vec3{}, false
	}
	x, err1 := strconv.ParseFloat(parts[0], 64)
	y, err2 := strconv.ParseFloat(parts[1], 64)
	z, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{x, y, z}, true
}

func (c *Console) printHelp() {
	fmt.Print("[debug] keys:\r\n")
	fmt.Print("  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Print("  Space: jump\r\n")
	fmt.Print("  C: toggle crouch\r\n")
	fmt.Print("  Arrow Left/Right: orbit camera\r\n")
	fmt.Print("  Arrow Up/Down: tilt camera\r\n")
	fmt.Print("  -/=: zoom out/in\r\n")
	fmt.Print("  X: clear all input\r\n")
	fmt.Print("  : enter command mode\r\n")
	fmt.Print("[debug] commands:\r\n")
	fmt.Print("  :state\r\n")
	fmt.Print("  :cam\r\n")
	fmt.Print("  :tp <x> <y> <z>\r\n")
	fmt.Print("  :impulse <x> <y> <z>\r\n")
	fmt.Print("  :help\r\n")
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	crouch := c.crouchHeld
	width := c.statusWidth
	c.mu.Unlock()

	st := c.actor.State()

	line := fmt.Sprintf(
		"[X:%.2f Y:%.2f Z:%.2f | vel:%.2f ground:%t crouch:%t | cam dist:%.1f]",
		st.Position.X(),
		st.Position.Y(),
		st.Position.Z(),
		st.Velocity.Len(),
		st.Grounded,
		crouch,
		c.camera.Distance(),
	)

	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Printf("\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}
