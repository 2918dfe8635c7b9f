package youtube

import (
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the shape of a caption track.
type Stats struct {
	Segments           int
	Words              int
	MeanSegmentSeconds float64
	TotalSeconds       float64
}

// Stats computes caption statistics over the transcript's segments.
func (t *Transcript) Stats() Stats {
	s := Stats{Segments: len(t.Segments)}
	if len(t.Segments) == 0 {
		return s
	}

	durations := make([]float64, 0, len(t.Segments))
	for _, seg := range t.Segments {
		s.Words += len(strings.Fields(seg.Text))
		durations = append(durations, seg.Duration)
	}

	s.MeanSegmentSeconds = stat.Mean(durations, nil)
	last := t.Segments[len(t.Segments)-1]
	s.TotalSeconds = last.Start + last.Duration
	return s
}
