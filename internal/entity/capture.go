package entity

type PositionStatus string

const (
	NoPersonDetected PositionStatus = "NO_PERSON_DETECTED"
	PerfectPosition  PositionStatus = "PERFECT_POSITION"
	AdjustPosition   PositionStatus = "ADJUST_POSITION"
)

type PoseResult struct {
	Status       PositionStatus `json:"status"`
	Instructions []string       `json:"instructions,omitempty"`
	XDeviation   float64        `json:"x_deviation,omitempty"`
	YDeviation   float64        `json:"y_deviation,omitempty"`
	BodyRatio    float64        `json:"body_ratio,omitempty"`
}

type Frame struct {
	Data   []byte
	Width  int
	Height int
}
