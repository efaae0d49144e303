package insights

// State is the load state of an insight view.
type State int

const (
	// StateIdle means nothing has been requested yet.
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateSuccess means the latest fetch returned a payload, or there was no data to analyse.
	StateSuccess
	// StateFailure means the latest fetch failed and may be retried.
	StateFailure
)

// String returns a human-readable string for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}
