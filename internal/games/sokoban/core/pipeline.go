package core

import "github.com/charmbracelet/log"

// processEvents drains one batch of events in FIFO order.
// Derived events are queued for the next pass, never handled in this one.
// It returns the sound cues fired during the pass.
func processEvents(w *World, events *EventQueue, sounds SoundPlayer, logger *log.Logger) []string {
	batch := events.Drain()
	if len(batch) == 0 {
		return nil
	}

	var cues []string
	play := func(cue string) {
		cues = append(cues, cue)
		sounds.Play(cue)
	}

	var spots map[Coord]BoxSpot
	for _, ev := range batch {
		logger.Debug("event", "event", ev)

		switch ev := ev.(type) {
		case PlayerHitObstacle:
			play(SoundWall)

		case EntityMoved:
			box := w.Boxes.Get(ev.ID)
			if box == nil {
				continue
			}
			pos := w.Positions.Get(ev.ID)
			if pos == nil {
				continue
			}
			if spots == nil {
				spots = spotIndex(w)
			}
			if spot, ok := spots[pos.Coord()]; ok {
				events.Push(BoxPlacedOnSpot{IsCorrectSpot: spot.Colour == box.Colour})
			}

		case BoxPlacedOnSpot:
			if ev.IsCorrectSpot {
				play(SoundCorrect)
			} else {
				play(SoundIncorrect)
			}
		}
	}

	return cues
}

// spotIndex maps cells to the box spot standing on them.
func spotIndex(w *World) map[Coord]BoxSpot {
	out := make(map[Coord]BoxSpot, w.Spots.Len())
	for e, spot := range w.Spots.All() {
		if pos := w.Positions.Get(e); pos != nil {
			out[pos.Coord()] = *spot
		}
	}
	return out
}
