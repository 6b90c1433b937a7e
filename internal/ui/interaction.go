package ui

import "image"

// CursorKind is the cursor shape the pointer should show.
type CursorKind int

const (
	// CursorDefault is the arrow.
	CursorDefault CursorKind = iota
	// CursorPointer is the hand shown over buttons.
	CursorPointer
)

// String returns the string representation of the cursor kind.
func (k CursorKind) String() string {
	if k == CursorPointer {
		return "pointer"
	}

	return "default"
}

// Snapshot is the interaction state of one frame. It is rebuilt from
// scratch every frame.
type Snapshot struct {
	Pointer image.Point
	// Hovered lists hovered regions in region order.
	Hovered []RegionID
	Cursor  CursorKind
}

// IsHovered reports whether the region is under the pointer.
func (s Snapshot) IsHovered(id RegionID) bool {
	for _, hovered := range s.Hovered {
		if hovered == id {
			return true
		}
	}

	return false
}

// Evaluate hit-tests pointer against regions.
func Evaluate(pointer image.Point, regions []Region) Snapshot {
	snapshot := Snapshot{Pointer: pointer, Cursor: CursorDefault}

	for _, region := range regions {
		if region.Bounds.Contains(pointer.X, pointer.Y) {
			snapshot.Hovered = append(snapshot.Hovered, region.ID)
		}
	}

	if len(snapshot.Hovered) > 0 {
		snapshot.Cursor = CursorPointer
	}

	return snapshot
}
