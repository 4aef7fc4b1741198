package sink

import (
	"encoding/json"

	"github.com/matzehuels/gaugechart/pkg/gauge"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	config *gauge.Config
	name   string
}

// WithJSONConfig records the configuration the scene was drawn from.
func WithJSONConfig(cfg gauge.Config) JSONOption {
	return func(r *jsonRenderer) { r.config = &cfg }
}

// WithJSONName records the gauge name, for live gauges.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

type jsonOutput struct {
	Name    string        `json:"name,omitempty"`
	Value   float64       `json:"value"`
	Max     float64       `json:"max"`
	Angle   float64       `json:"angle"`
	Target  float64       `json:"target"`
	Text    string        `json:"text,omitempty"`
	Settled bool          `json:"settled"`
	Config  *gauge.Config `json:"config,omitempty"`
	Scene   *gauge.Scene  `json:"scene"`
}

// RenderJSON exports the scene and a summary of its needle state as
// pretty-printed JSON. Angles are in degrees.
func RenderJSON(s *gauge.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:    r.name,
		Value:   s.Value,
		Max:     s.Max,
		Angle:   s.Needle.Angle,
		Target:  s.Needle.Tween.To,
		Settled: s.Settled(),
		Config:  r.config,
		Scene:   s,
	}
	if s.Indicator != nil {
		out.Text = s.Indicator.Swap.Next
	}
	return json.MarshalIndent(out, "", "  ")
}
