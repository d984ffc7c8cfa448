package gra

const (
	DefaultNumIndices      = 13
	DefaultR               = 0.5
	DefaultThresholdFactor = 0.5246
	DefaultProgressEvery   = 1024

	// MaxNumIndices bounds the candidate set at 2^30 references.
	MaxNumIndices = 30

	LabelCategory1 = 2.0
	LabelCategory2 = 0.0
)

func DefaultParams() Params {
	return Params{
		R:               DefaultR,
		ThresholdFactor: DefaultThresholdFactor,
		Workers:         1,
		ProgressEvery:   DefaultProgressEvery,
	}
}
