package orchestrator

// State enumerates the phases of a single run. Any state between
// ResolvingGenerator and Rendering may transition directly to Cleanup on
// error; Cleanup always runs and then resolves to Succeeded or Failed.
type State int

const (
	StateIdle State = iota
	StateResolvingGenerator
	StateValidatingGenerator
	StateLoadingSchema
	StateValidatingSchema
	StateComputingCounters
	StateTransforming
	StateLoadingExtensions
	StatePreparingOutput
	StateRendering
	StateCleanup
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:                "idle",
	StateResolvingGenerator:  "resolving-generator",
	StateValidatingGenerator: "validating-generator",
	StateLoadingSchema:       "loading-schema",
	StateValidatingSchema:    "validating-schema",
	StateComputingCounters:   "computing-counters",
	StateTransforming:        "transforming",
	StateLoadingExtensions:   "loading-extensions",
	StatePreparingOutput:     "preparing-output",
	StateRendering:           "rendering",
	StateCleanup:             "cleanup",
	StateSucceeded:           "succeeded",
	StateFailed:              "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
