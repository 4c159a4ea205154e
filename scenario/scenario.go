// Package scenario loads grid layouts for the wavefront planner from YAML or
// JSON documents and builds ready-to-propagate grids from them.
//
// A document looks like:
//
//	name: wall-between
//	width: 10
//	height: 10
//	cell_width: 33.0      # optional, default 33.0
//	cell_height: 33.0     # optional, default 33.0
//	agent: [4, 0]
//	goal: [4, 9]
//	walls: [[3, 4], [4, 4], [5, 4]]
//	readings:             # optional range-sensor hits taken from the agent cell
//	  - {angle: 90, range: 66}
//
// Documents are validated against an embedded JSON Schema before decoding.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wavefront/wavefront"
)

// Sentinel errors for scenario parsing.
var (
	// ErrInvalid indicates a document that is not valid YAML/JSON or fails
	// the schema.
	ErrInvalid = errors.New("scenario: invalid document")
	// ErrOutOfBounds indicates a point outside the declared grid size.
	ErrOutOfBounds = errors.New("scenario: point outside grid")
)

//go:embed scenario.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/katalvlaran/wavefront/scenario.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Point is an [x, y] cell coordinate.
type Point [2]int

// Reading is one range-sensor hit: something was detected Range real-world
// units away at bearing Angle (degrees, 0 along +x, counter-clockwise).
type Reading struct {
	Angle float64 `yaml:"angle"`
	Range float64 `yaml:"range"`
}

// Scenario is a decoded layout document.
type Scenario struct {
	Name       string    `yaml:"name"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	CellWidth  float64   `yaml:"cell_width"`
	CellHeight float64   `yaml:"cell_height"`
	Agent      Point     `yaml:"agent"`
	Goal       Point     `yaml:"goal"`
	Walls      []Point   `yaml:"walls"`
	Readings   []Reading `yaml:"readings"`
}

// Load reads and parses the scenario at path.
func Load(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	s, err := Parse(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML or JSON document, validates it against the embedded
// schema and checks every point against the declared size.
func Parse(raw []byte) (Scenario, error) {
	var s Scenario

	// JSON is a subset of YAML, so one decoder serves both formats. The
	// validator works on JSON values, so the generic tree is re-encoded
	// before validation; the struct itself is decoded by yaml.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return s, fmt.Errorf("scenario: compile schema: %w", err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(inst); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.checkBounds(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Scenario) checkBounds() error {
	in := func(p Point) bool {
		return p[0] >= 0 && p[0] < s.Width && p[1] >= 0 && p[1] < s.Height
	}
	if !in(s.Agent) {
		return fmt.Errorf("%w: agent %v in %d×%d", ErrOutOfBounds, s.Agent, s.Width, s.Height)
	}
	if !in(s.Goal) {
		return fmt.Errorf("%w: goal %v in %d×%d", ErrOutOfBounds, s.Goal, s.Width, s.Height)
	}
	if s.Agent == s.Goal {
		return fmt.Errorf("%w: agent and goal share cell %v", ErrInvalid, s.Agent)
	}
	for _, w := range s.Walls {
		if !in(w) {
			return fmt.Errorf("%w: wall %v in %d×%d", ErrOutOfBounds, w, s.Width, s.Height)
		}
	}
	return nil
}

// Build constructs a grid from s. Walls are written first, then every
// reading is cast from the agent cell and its on-grid hit becomes a wall,
// and finally the agent and goal markers are placed over whatever is
// underneath.
func (s Scenario) Build() (*wavefront.Grid, error) {
	cw, ch := s.CellWidth, s.CellHeight
	if cw == 0 {
		cw = wavefront.DefaultCellWidth
	}
	if ch == 0 {
		ch = wavefront.DefaultCellHeight
	}
	g, err := wavefront.NewGrid(s.Width, s.Height, wavefront.WithCellSize(cw, ch))
	if err != nil {
		return nil, err
	}

	for _, w := range s.Walls {
		g.Write(w[0], w[1], wavefront.Wall)
	}
	for _, r := range s.Readings {
		hit := g.CastFromCell(s.Agent[0], s.Agent[1], r.Angle, r.Range)
		if hit.OnGrid(s.Width, s.Height) {
			g.Write(int(hit.X), int(hit.Y), wavefront.Wall)
		}
	}
	g.Write(s.Agent[0], s.Agent[1], wavefront.Agent)
	g.Write(s.Goal[0], s.Goal[1], wavefront.Goal)
	return g, nil
}
