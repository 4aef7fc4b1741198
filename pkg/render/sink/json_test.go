package sink

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/gaugechart/pkg/gauge"
)

func TestRenderJSON(t *testing.T) {
	s, clock, c := testScene(t, func(c *gauge.Chart) {
		c.SetIndicator(gauge.Params{"show": true})
	})

	data, err := RenderJSON(s, WithJSONName("cpu"), WithJSONConfig(c.Config()))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Name != "cpu" {
		t.Errorf("Name = %q, want cpu", out.Name)
	}
	if out.Value != 50 || out.Max != 100 {
		t.Errorf("Value/Max = %v/%v, want 50/100", out.Value, out.Max)
	}
	if out.Text != "50" {
		t.Errorf("Text = %q, want 50", out.Text)
	}
	if out.Settled {
		t.Error("Settled = true right after render")
	}
	if out.Config == nil || out.Config.Max != 100 {
		t.Errorf("Config = %+v", out.Config)
	}
	if out.Scene == nil || len(out.Scene.Arc) != 1 {
		t.Errorf("Scene = %+v", out.Scene)
	}

	clock.Advance(time.Second)
	data, err = RenderJSON(c.Scene())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	out = jsonOutput{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if !out.Settled || out.Angle != out.Target {
		t.Errorf("after the transition Settled=%v Angle=%v Target=%v", out.Settled, out.Angle, out.Target)
	}
}
