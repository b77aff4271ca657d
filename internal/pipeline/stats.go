package pipeline

// RunStats aggregates counters and totals across a batch run for the final
// summary.
type RunStats struct {
	Total           int
	Current         int
	Succeeded       int
	Failed          int
	Unrouted        int
	TotalPages      int   // Sum of known page counts of converted files.
	TotalInputBytes int64 // Sum of source sizes of converted files.
}

// Processed returns how many tasks reached a terminal state.
func (s *RunStats) Processed() int {
	return s.Succeeded + s.Failed + s.Unrouted
}
