// Package scene holds the Document State of the whiteboard: the ordered
// element collection and the flat application state. It is pure data.
package scene

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Element kinds drawn by the built-in tools.
const (
	KindRectangle = "rectangle"
	KindDiamond   = "diamond"
	KindEllipse   = "ellipse"
	KindArrow     = "arrow"
	KindLine      = "line"
	KindFreedraw  = "freedraw"
	KindText      = "text"
	KindImage     = "image"
)

// Element is a versioned drawing record. It is a value type: a change
// produces a new copy with a higher Version, so snapshots held elsewhere
// stay valid.
type Element struct {
	ID              string
	Type            string
	X, Y            float64
	Width, Height   float64
	StrokeColor     string
	BackgroundColor string
	StrokeWidth     float64
	Opacity         int
	IsDeleted       bool

	// Version increases on every change. VersionNonce is random per version
	// and breaks ties between concurrent edits of the same version.
	Version      int
	VersionNonce uint32
	Updated      int64 // unix millis
}

// NewElement creates a first-version element with a fresh identity.
func NewElement(kind string, x, y, width, height float64) Element {
	return Element{
		ID:           uuid.NewString(),
		Type:         kind,
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		Opacity:      100,
		Version:      1,
		VersionNonce: newNonce(),
		Updated:      time.Now().UnixMilli(),
	}
}

// Mutate returns a copy of e with fn applied and the version bumped.
// The identity cannot be changed by fn.
func (e Element) Mutate(fn func(*Element)) Element {
	next := e
	if fn != nil {
		fn(&next)
	}
	next.ID = e.ID
	next.Version = e.Version + 1
	next.VersionNonce = newNonce()
	next.Updated = time.Now().UnixMilli()
	return next
}

// Contains reports whether the point lies inside the element bounds.
func (e Element) Contains(x, y float64) bool {
	minX, maxX := e.X, e.X+e.Width
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	minY, maxY := e.Y, e.Y+e.Height
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

func newNonce() uint32 {
	return rand.Uint32()
}
