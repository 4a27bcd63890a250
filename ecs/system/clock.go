package system

import "github.com/hajimehoshi/ebiten/v2"

// Clock reports the seconds covered by the current update tick.
type Clock interface {
	Delta() float64
}

// TickClock follows ebiten's fixed ticks-per-second schedule.
type TickClock struct{}

func (TickClock) Delta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(tps)
}
