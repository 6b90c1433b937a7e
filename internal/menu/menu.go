// Package menu runs the main menu: a looping background video with the
// NEW GAME and SYSTEM buttons drawn over it.
package menu

import (
	"github.com/sirupsen/logrus"

	"github.com/erparts/tunesca/internal/ui"
)

const (
	// RegionNewGame starts a new game.
	RegionNewGame ui.RegionID = "new-game"
	// RegionSystem opens the system menu.
	RegionSystem ui.RegionID = "system"
)

// Regions is the button layout of a 1280x800 viewport.
var Regions = []ui.Region{
	{ID: RegionNewGame, Label: "NEW GAME", Bounds: ui.Rect{X: 490, Y: 440, W: 300, H: 70}},
	{ID: RegionSystem, Label: "SYSTEM", Bounds: ui.Rect{X: 490, Y: 530, W: 300, H: 70}},
}

// DefaultActions logs the button presses. The game and the system menu
// live outside this screen.
func DefaultActions() ui.Actions {
	return ui.Actions{
		RegionNewGame: func() {
			logrus.WithFields(logrus.Fields{
				"function": "NewGame",
			}).Info("New game started")
		},
		RegionSystem: func() {
			logrus.WithFields(logrus.Fields{
				"function": "OpenSystem",
			}).Info("System menu opened")
		},
	}
}
