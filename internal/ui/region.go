// Package ui computes per-frame interaction state for the menu: which
// buttons the pointer hovers, which cursor to show and which actions a
// click triggers. It has no display dependency.
package ui

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// Rect is a rectangle in viewport pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether (x, y) lies in the rectangle. Both edges are
// inclusive, so a rectangle covers W+1 by H+1 pixel positions.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W &&
		y >= r.Y && y <= r.Y+r.H
}

// Overlaps reports whether the two rectangles share at least one position.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Image returns the rectangle as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// RegionID identifies a region and the action bound to it.
type RegionID string

// Region is a clickable rectangle with a label.
type Region struct {
	ID     RegionID
	Label  string
	Bounds Rect
}

// ErrInvalidRegion is returned for region sets that can't be used.
var ErrInvalidRegion = errors.New("invalid region")

// ValidateRegions checks a static region set. Duplicate ids and empty
// rectangles are errors. Overlapping regions are allowed but logged, since
// a click in the overlap fires every hovered action.
func ValidateRegions(regions []Region) error {
	seen := make(map[RegionID]bool, len(regions))

	for i, region := range regions {
		if region.ID == "" {
			return fmt.Errorf("%w: region #%d has no id", ErrInvalidRegion, i)
		}
		if seen[region.ID] {
			return fmt.Errorf("%w: duplicate region id %q", ErrInvalidRegion, region.ID)
		}
		seen[region.ID] = true

		if region.Bounds.W <= 0 || region.Bounds.H <= 0 {
			return fmt.Errorf("%w: region %q has an empty rectangle", ErrInvalidRegion, region.ID)
		}

		for _, other := range regions[:i] {
			if region.Bounds.Overlaps(other.Bounds) {
				logrus.WithFields(logrus.Fields{
					"function": "ValidateRegions",
					"region":   region.ID,
					"other":    other.ID,
				}).Warn("Regions overlap, a click in the overlap triggers both")
			}
		}
	}

	return nil
}
