// Package physics implements the side-scroller simulation: momentum
// based player movement, walker enemies and the per-tick world step
// that resolves collisions, pickups, deaths and goal detection.
package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Player is the controllable character. Movement uses acceleration and
// friction rather than fixed velocities, so speed builds and bleeds
// off over several ticks.
type Player struct {
	X, Y       float64
	VelX, VelY float64
	W, H       float64

	OnGround    bool
	FacingRight bool

	phys config.PhysicsConfig
	ctl  config.PlayerConfig
}

// NewPlayer creates a player at the given position.
func NewPlayer(phys config.PhysicsConfig, ctl config.PlayerConfig, x, y float64) *Player {
	return &Player{
		X: x, Y: y,
		W: ctl.Width, H: ctl.Height,
		FacingRight: true,
		phys:        phys,
		ctl:         ctl,
	}
}

// Rect returns the player's collision box.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// HandleInput applies one tick of input: acceleration while a
// direction is held, friction otherwise, and a jump impulse when
// grounded.
func (p *Player) HandleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		p.VelX -= p.ctl.Acceleration
		p.FacingRight = false
	case in.Has(core.ActionRight):
		p.VelX += p.ctl.Acceleration
		p.FacingRight = true
	default:
		if p.OnGround {
			p.VelX *= p.phys.GroundFriction
		} else {
			p.VelX *= p.phys.AirFriction
		}
	}
	p.VelX = core.ClampF(p.VelX, -p.ctl.MaxSpeed, p.ctl.MaxSpeed)

	if in.Has(core.ActionJump) && p.OnGround {
		p.VelY = -p.ctl.JumpPower
		p.OnGround = false
	}
}

// Update advances one tick of player physics and resolves collisions
// against the platforms.
func (p *Player) Update(platforms []core.Rect) {
	if !p.OnGround {
		p.VelY += p.phys.Gravity
		if p.VelY > p.phys.MaxFallSpeed {
			p.VelY = p.phys.MaxFallSpeed
		}
	}

	p.X += p.VelX
	p.Y += p.VelY

	p.resolveCollisions(platforms)
}

// resolveCollisions pushes the player out of any overlapping platform.
// Vertical resolution only applies near the crossed face so a fast
// fall through a thin platform cannot snap the player to the wrong
// side; horizontal resolution uses the current speed as tolerance.
func (p *Player) resolveCollisions(platforms []core.Rect) {
	p.OnGround = false

	for _, platform := range platforms {
		r := p.Rect()
		if !r.Intersects(platform) {
			continue
		}

		if p.VelY > 0 {
			if r.Bottom() > platform.Y && r.Bottom() < platform.Y+20 {
				p.Y = platform.Y - p.H
				p.VelY = 0
				p.OnGround = true
			}
		} else if p.VelY < 0 {
			if r.Y < platform.Bottom() && r.Y > platform.Bottom()-20 {
				p.Y = platform.Bottom()
				p.VelY = 0
			}
		}

		r = p.Rect()
		if p.VelX > 0 {
			if r.Right() > platform.X && r.Right() < platform.X+p.VelX+5 {
				p.X = platform.X - p.W
				p.VelX = 0
			}
		} else if p.VelX < 0 {
			if r.X < platform.Right() && r.X > platform.Right()+p.VelX-5 {
				p.X = platform.Right()
				p.VelX = 0
			}
		}
	}
}

// Reset moves the player to a position and zeroes all momentum.
func (p *Player) Reset(x, y float64) {
	p.X = x
	p.Y = y
	p.VelX = 0
	p.VelY = 0
	p.OnGround = false
}
