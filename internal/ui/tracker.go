package ui

import (
	"github.com/sirupsen/logrus"
)

// Action is the function bound to a region.
type Action func()

// Actions maps region ids to their actions.
type Actions map[RegionID]Action

// Tracker dispatches left button presses to the actions of hovered
// regions. It keeps the button state so that only press edges fire.
type Tracker struct {
	regions []Region
	actions Actions
	held    bool
	fired   map[RegionID]int
}

// NewTracker returns a tracker over a validated region set.
func NewTracker(regions []Region, actions Actions) (*Tracker, error) {
	if err := ValidateRegions(regions); err != nil {
		return nil, err
	}

	for _, region := range regions {
		if actions[region.ID] == nil {
			logrus.WithFields(logrus.Fields{
				"function": "NewTracker",
				"region":   region.ID,
			}).Warn("Region has no bound action")
		}
	}

	return &Tracker{
		regions: regions,
		actions: actions,
		fired:   make(map[RegionID]int),
	}, nil
}

// Regions returns the static region set.
func (t *Tracker) Regions() []Region {
	return t.regions
}

// Evaluate hit-tests the pointer against the tracker's regions.
func (t *Tracker) Evaluate(input Input) Snapshot {
	return Evaluate(input.Pointer, t.regions)
}

// Handle applies one pointer event. A left press that isn't preceded by
// a release is ignored. It returns the number of actions invoked.
func (t *Tracker) Handle(event Event, snapshot Snapshot) int {
	if event.Button != ButtonLeft {
		return 0
	}

	switch event.Kind {
	case EventButtonUp:
		t.held = false
		return 0

	case EventButtonDown:
		if t.held {
			return 0
		}
		t.held = true

	default:
		return 0
	}

	invoked := 0
	for _, id := range snapshot.Hovered {
		action := t.actions[id]
		if action == nil {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function": "Tracker.Handle",
			"region":   id,
		}).Debug("Dispatching region action")

		action()
		t.fired[id]++
		invoked++
	}

	return invoked
}

// Fired returns how many times the action of id was invoked.
func (t *Tracker) Fired(id RegionID) int {
	return t.fired[id]
}
