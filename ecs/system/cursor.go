package system

import "github.com/hajimehoshi/ebiten/v2"

// CursorLocker hides and captures the OS cursor while the camera is being
// dragged. Safe to call every active frame.
type CursorLocker interface {
	LockAndHide()
}

// CaptureCursor is the ebiten-backed locker.
type CaptureCursor struct{}

func (CaptureCursor) LockAndHide() {
	if ebiten.CursorMode() != ebiten.CursorModeCaptured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}
