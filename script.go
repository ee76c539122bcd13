package folio

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a scripted session.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	MS     int     `json:"ms,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays scroll, theme and snapshot actions across frames, so
// a page session can be driven headlessly. Attach it with Document.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitUntil time.Duration
	done      bool
}

// LoadScript parses a JSON script:
//
//	{"steps": [
//	  {"action": "wait", "ms": 2500},
//	  {"action": "scroll-to", "y": 900, "frames": 30},
//	  {"action": "snapshot", "label": "metrics"}
//	]}
//
// Supported actions are scroll (relative, y), scroll-to (absolute, y over
// frames), wait (frames or ms), toggle-theme and snapshot.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "scroll", "scroll-to", "wait", "toggle-theme", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner to the document. Its step method is called at
// the start of every Update.
func (d *Document) SetScript(r *ScriptRunner) {
	d.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(d *Document) {
	if r.done {
		return
	}
	// Wait for queued scroll steps to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if d.Now() < r.waitUntil {
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		d.InjectScroll(st.Y)
	case "scroll-to":
		d.InjectScrollTo(st.Y, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.MS > 0 {
			r.waitUntil = d.Now() + time.Duration(st.MS)*time.Millisecond
		}
	case "toggle-theme":
		if d.OnToggleTheme != nil {
			d.OnToggleTheme()
		}
	case "snapshot":
		if d.OnSnapshot != nil {
			d.OnSnapshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && d.Now() >= r.waitUntil && len(d.injectQueue) == 0 {
		r.done = true
	}
}
