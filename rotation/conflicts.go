package rotation

// Conflict reports a training date that collides with a day the worker is
// not expected to be available on.
type Conflict struct {
	Date     Date
	Existing DayType
}

// DetectConflicts returns every date in [trainingStart, trainingEnd] whose
// current (pre-training) day type is an off-type. Training requires the
// worker to be available, so training on an off day must be rescheduled or
// explicitly accepted by the caller. Dates outside the schedule span are
// skipped.
func DetectConflicts(s *Schedule, trainingStart, trainingEnd Date) []Conflict {
	var conflicts []Conflict
	for d := trainingStart; d.BeforeOrEqual(trainingEnd); d = d.AddDays(1) {
		day, ok := s.DayAt(d)
		if !ok {
			continue
		}
		if day.Type.IsOff() {
			conflicts = append(conflicts, Conflict{Date: d, Existing: day.Type})
		}
	}
	return conflicts
}
