package content

import "time"

// Recorder receives refresh and mutation observations.
// *metrics.Metrics satisfies it; a nil Recorder disables recording.
type Recorder interface {
	ObserveFetch(category, outcome string, d time.Duration)
	ObserveRefresh(d time.Duration, failed int)
	ObserveMutation(category, op string, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveFetch(string, string, time.Duration) {}
func (noopRecorder) ObserveRefresh(time.Duration, int)          {}
func (noopRecorder) ObserveMutation(string, string, error)      {}
