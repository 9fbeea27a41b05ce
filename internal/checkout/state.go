package checkout

// SubmissionState is the externally observable phase of the order submission
// lifecycle. Exactly one of the loading, success, or error facets is active at
// a time; the zero value is the idle state.
type SubmissionState struct {
	IsLoading bool   `json:"isLoading"`
	IsSuccess bool   `json:"isSuccess"`
	Error     string `json:"error,omitempty"`
}

func StateIdle() SubmissionState {
	return SubmissionState{}
}

func StateInFlight() SubmissionState {
	return SubmissionState{IsLoading: true}
}

func StateSucceeded() SubmissionState {
	return SubmissionState{IsSuccess: true}
}

func StateFailed(message string) SubmissionState {
	return SubmissionState{Error: message}
}

// Terminal reports whether the state ends an attempt.
func (s SubmissionState) Terminal() bool {
	return s.IsSuccess || s.Error != ""
}
