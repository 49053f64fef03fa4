package domain

// ValidateWindow checks a proposed performance range, in minutes since
// midnight on the event's date, against the event's opening window.
// It has no side effects and is safe to call concurrently.
func (e *Event) ValidateWindow(startMin, endMin int) error {
	if startMin >= endMin {
		return ErrInvalidRange
	}
	if startMin < e.DoorOpenMin || endMin > e.EndMin {
		return ErrOutsideWindow
	}
	return nil
}

// RangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints (one set ends exactly when the other starts) do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
