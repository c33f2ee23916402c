// Package model defines the core data structures shared by the FrameFit
// geometry engine and its consumers: parts, footprint profiles, screw
// presets, and the analysis settings.
package model

import "github.com/google/uuid"

// Category classifies a part by the kind of stock it is made from.
type Category string

const (
	CategoryLumber   Category = "lumber"   // dimensional lumber (studs, boards)
	CategorySheet    Category = "sheet"    // sheet goods (plywood, MDF)
	CategoryHardware Category = "hardware" // screws, hinges, brackets
)

// HardwareKind refines hardware parts. Empty for lumber and sheet parts.
type HardwareKind string

const (
	HardwareNone     HardwareKind = ""
	HardwareFastener HardwareKind = "fastener"
	HardwareHinge    HardwareKind = "hinge"
)

// Part is a single piece of an assembly. Position is the world-space center
// of the part's bounding box; Size is width (X), height (Y), depth (Z) in
// inches; Rotation holds Euler angles in degrees applied in fixed X, Y, Z
// order. The engine treats a part slice as an immutable snapshot: it never
// mutates parts and never retains them across calls.
type Part struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	Category  Category     `json:"category"`
	Hardware  HardwareKind `json:"hardware,omitempty"`
	Size      Vec3         `json:"size"`
	Position  Vec3         `json:"position"`
	Rotation  Vec3         `json:"rotation"`
	Footprint *Footprint   `json:"footprint,omitempty"` // nil = full rectangle
}

// NewLumber creates a lumber part centered at the given position.
func NewLumber(label string, size, position Vec3) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Category: CategoryLumber,
		Size:     size,
		Position: position,
	}
}

// NewSheet creates a sheet-goods part centered at the given position.
func NewSheet(label string, size, position Vec3) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Category: CategorySheet,
		Size:     size,
		Position: position,
	}
}

// IsWood reports whether the part is structural stock rather than hardware.
func (p Part) IsWood() bool {
	return p.Category == CategoryLumber || p.Category == CategorySheet
}

// IsFastener reports whether the part is a fastener hardware piece.
func (p Part) IsFastener() bool {
	return p.Category == CategoryHardware && p.Hardware == HardwareFastener
}

// Volume returns the bounding-box volume in cubic inches, scaled by the
// footprint profile's area fraction when a profile is present.
func (p Part) Volume() float64 {
	v := p.Size.X * p.Size.Y * p.Size.Z
	if p.Footprint != nil {
		full := p.Size.X * p.Size.Z
		if full > 0 {
			v *= p.Footprint.Area(p.Size.X, p.Size.Z) / full
		}
	}
	return v
}

// FootprintArea returns the area of the part's local X/Z profile in square
// inches.
func (p Part) FootprintArea() float64 {
	if p.Footprint != nil {
		return p.Footprint.Area(p.Size.X, p.Size.Z)
	}
	return p.Size.X * p.Size.Z
}
