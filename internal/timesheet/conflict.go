package timesheet

import (
	"slices"
	"time"
)

// Overlaps tests two half-open intervals as three cases: a contains b's
// start, a contains b's end, or b contains a.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	startsInside := !bStart.Before(aStart) && bStart.Before(aEnd)
	endsInside := bEnd.After(aStart) && !bEnd.After(aEnd)
	containsA := !aStart.Before(bStart) && !aEnd.After(bEnd)
	return startsInside || endsInside || containsA
}

// entriesOverlap reports whether any same-day entries of a and b overlap.
func entriesOverlap(a, b *Timesheet) bool {
	for _, ea := range a.DailyEntries {
		aStart, aEnd, ok := ea.interval()
		if !ok {
			continue
		}
		eb := b.Entry(ea.Date)
		if eb == nil {
			continue
		}
		bStart, bEnd, ok := eb.interval()
		if !ok {
			continue
		}
		if Overlaps(aStart, aEnd, bStart, bEnd) {
			return true
		}
	}
	return false
}

// DetectConflicts recomputes ts's conflict set against the worker's other
// timesheets for the same week and keeps the references mutual. References
// that no longer overlap are removed from both sides. It returns the other
// timesheets whose conflict fields changed and must be saved.
func DetectConflicts(ts *Timesheet, others []*Timesheet) []*Timesheet {
	id := ts.ID.String()
	var conflicts []string
	var changed []*Timesheet

	for _, o := range others {
		if o.ID == ts.ID || o.IsDeleted {
			continue
		}

		hit := !ts.IsDeleted && entriesOverlap(ts, o)
		has := slices.Contains(o.ConflictWith, id)
		switch {
		case hit && !has:
			o.ConflictWith = append(o.ConflictWith, id)
			o.IsConflict = true
			changed = append(changed, o)
		case !hit && has:
			o.ConflictWith = slices.DeleteFunc(o.ConflictWith, func(v string) bool { return v == id })
			o.IsConflict = len(o.ConflictWith) > 0
			changed = append(changed, o)
		}

		if hit {
			conflicts = append(conflicts, o.ID.String())
		}
	}

	slices.Sort(conflicts)
	ts.ConflictWith = conflicts
	ts.IsConflict = len(conflicts) > 0
	return changed
}

// ReleaseConflicts drops every reference to ts from others, used when ts is deleted.
func ReleaseConflicts(ts *Timesheet, others []*Timesheet) []*Timesheet {
	ts.IsDeleted = true
	changed := DetectConflicts(ts, others)
	ts.ConflictWith = nil
	ts.IsConflict = false
	return changed
}
