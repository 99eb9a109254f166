package selection

import "time"

// Recorder receives selection measurements. internal/metrics provides a
// Prometheus implementation.
type Recorder interface {
	// SelectionFinished is called once per SelectQuestions call.
	SelectionFinished(strategy string, d time.Duration, selected int)

	// OracleCall reports how one oracle call ended: ok, timeout, canceled,
	// empty, no_valid_ids, unavailable, error or skipped.
	OracleCall(outcome string)

	// RandomFallback is called whenever a random sample replaces the
	// oracle's pick. scope is "tier" or "flat".
	RandomFallback(scope string)
}

type nopRecorder struct{}

func (nopRecorder) SelectionFinished(string, time.Duration, int) {}
func (nopRecorder) OracleCall(string)                            {}
func (nopRecorder) RandomFallback(string)                        {}
