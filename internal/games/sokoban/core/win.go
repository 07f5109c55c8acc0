package core

// EvaluateWin recomputes the level state from current positions.
// A level is won when every box spot has some box on it. Colour is not
// checked here; only the sound feedback distinguishes correct placement.
func EvaluateWin(w *World) GameplayState {
	occupied := make(map[Coord]struct{}, w.Boxes.Len())
	for e := range w.Boxes.All() {
		if pos := w.Positions.Get(e); pos != nil {
			occupied[pos.Coord()] = struct{}{}
		}
	}

	for e := range w.Spots.All() {
		pos := w.Positions.Get(e)
		if pos == nil {
			continue
		}
		if _, ok := occupied[pos.Coord()]; !ok {
			return StatePlaying
		}
	}
	return StateWon
}

// Coverage counts spots with a box on them, ignoring colour.
func Coverage(w *World) (covered, total int) {
	occupied := make(map[Coord]struct{}, w.Boxes.Len())
	for e := range w.Boxes.All() {
		if pos := w.Positions.Get(e); pos != nil {
			occupied[pos.Coord()] = struct{}{}
		}
	}
	for e := range w.Spots.All() {
		pos := w.Positions.Get(e)
		if pos == nil {
			continue
		}
		total++
		if _, ok := occupied[pos.Coord()]; ok {
			covered++
		}
	}
	return covered, total
}
