package domain

// Transcript is a single speech-recognition result. Interim transcripts are
// only surfaced for status display; the capture loop acts on final ones.
type Transcript struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	// Seq is the arrival order assigned by the device stream.
	Seq int `json:"seq"`
	// Cycle groups results belonging to one recognition cycle; only the
	// first final result per cycle is acted upon.
	Cycle int `json:"cycle"`
}

// MinTranscriptLen is the shortest final transcript worth interpreting.
const MinTranscriptLen = 2
