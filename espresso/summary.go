package main

// CallSummary stores information on the program call.
type CallSummary struct {
	// Version stores espresso version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Command is the subcommand name.
	Command string `json:"command"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// NThreads is the number of processes used.
	NThreads int `json:"nThreads"`
	// Time is the computations time in seconds.
	TotalTime float64 `json:"time"`
}

// RecordSummary stores the outcome for one input sequence.
type RecordSummary struct {
	Name   string `json:"name"`
	Length int    `json:"length,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary is storing espresso run summary information.
type Summary struct {
	CallSummary
	// Model is the model key used.
	Model string `json:"model,omitempty"`
	// Constraints is the number of motif detectors (scrub only).
	Constraints int `json:"constraints,omitempty"`
	// Records has an entry per input sequence.
	Records []RecordSummary `json:"records,omitempty"`
	// Failed is the number of records without a result.
	Failed int `json:"failed"`
}
