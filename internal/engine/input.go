package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blastpong/internal/core"
)

// InputSource is polled exactly once per tick.
type InputSource interface {
	// Poll returns the input for tick and whether the user asked to quit.
	Poll(tick uint64) (core.InputFrame, bool)
}

// NoInput never presses anything.
type NoInput struct{}

// Poll implements InputSource.
func (NoInput) Poll(uint64) (core.InputFrame, bool) {
	return core.NewInputFrame(), false
}

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals only report key presses (and auto-repeat), never releases.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyState turns discrete key presses into a pressed-state query.
// A press is reported as JustPressed on the next poll and as held until
// the hold window passes without another press of the same key.
// It is safe to call Press from one goroutine while another polls.
type KeyState struct {
	mu       sync.Mutex
	hold     time.Duration
	now      func() time.Duration
	pending  map[core.Action]bool
	lastSeen map[core.Action]time.Duration
	quit     bool
}

// NewKeyState creates a key state measuring the hold window on clock.
// A nil clock uses the system clock.
func NewKeyState(hold time.Duration, clock core.Clock) *KeyState {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	if clock == nil {
		clock = core.NewSystemClock()
	}
	return &KeyState{
		hold:     hold,
		now:      clock.Now,
		pending:  make(map[core.Action]bool),
		lastSeen: make(map[core.Action]time.Duration),
	}
}

// Press records a key press.
func (k *KeyState) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	if a == core.ActionQuit {
		k.quit = true
		return
	}
	k.pending[a] = true
	k.lastSeen[a] = k.now()
}

// Quit makes the next poll report a quit request.
func (k *KeyState) Quit() {
	k.mu.Lock()
	k.quit = true
	k.mu.Unlock()
}

// Reset forgets every press and hold.
func (k *KeyState) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.pending)
	clear(k.lastSeen)
}

// Poll implements InputSource.
func (k *KeyState) Poll(uint64) (core.InputFrame, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	frame := core.NewInputFrame()
	for a := range k.pending {
		frame.Set(a)
	}
	clear(k.pending)

	now := k.now()
	for a, at := range k.lastSeen {
		if now-at < k.hold {
			frame.Hold(a)
		} else {
			delete(k.lastSeen, a)
		}
	}
	return frame, k.quit
}

// ScriptStep is one scheduled input.
//
//	- tick: 30
//	  press: [Bomb]
//	- tick: 40
//	  hold: [Up]
//	  until: 90
type ScriptStep struct {
	Tick  uint64   `yaml:"tick"`
	Press []string `yaml:"press,omitempty"`
	Hold  []string `yaml:"hold,omitempty"`
	Until uint64   `yaml:"until,omitempty"` // last tick of a hold, inclusive
	Quit  bool     `yaml:"quit,omitempty"`

	press []core.Action
	hold  []core.Action
}

// Script replays a fixed list of inputs keyed by tick number, for
// headless and reproducible runs.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("engine: parse script: %w", err)
	}
	for i := range s.Steps {
		step := &s.Steps[i]
		var err error
		if step.press, err = parseActions(step.Press); err != nil {
			return nil, fmt.Errorf("engine: script step %d: %w", i, err)
		}
		if step.hold, err = parseActions(step.Hold); err != nil {
			return nil, fmt.Errorf("engine: script step %d: %w", i, err)
		}
		if step.Until != 0 && step.Until < step.Tick {
			return nil, fmt.Errorf("engine: script step %d: until %d is before tick %d", i, step.Until, step.Tick)
		}
	}
	return &s, nil
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: read script: %w", err)
	}
	return ParseScript(data)
}

// parseActions accepts action names in any case ("bomb", "Bomb", "BOMB").
func parseActions(names []string) ([]core.Action, error) {
	out := make([]core.Action, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		canon := strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
		a, ok := core.ParseAction(canon)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		out = append(out, a)
	}
	return out, nil
}

// Poll implements InputSource.
func (s *Script) Poll(tick uint64) (core.InputFrame, bool) {
	frame := core.NewInputFrame()
	quit := false
	for _, step := range s.Steps {
		if tick == step.Tick {
			for _, a := range step.press {
				if a == core.ActionQuit {
					quit = true
					continue
				}
				frame.Set(a)
			}
			quit = quit || step.Quit
		}
		if len(step.hold) > 0 && tick >= step.Tick && tick <= max(step.Until, step.Tick) {
			for _, a := range step.hold {
				frame.Hold(a)
			}
		}
	}
	return frame, quit
}
