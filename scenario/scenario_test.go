package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavefront/scenario"
	"github.com/katalvlaran/wavefront/wavefront"
)

func TestLoad_YAML(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "wall.yaml"))
	require.NoError(t, err)
	require.Equal(t, "wall-between", s.Name)
	require.Equal(t, 10, s.Width)
	require.Equal(t, 10, s.Height)
	require.Equal(t, scenario.Point{4, 0}, s.Agent)
	require.Equal(t, scenario.Point{4, 9}, s.Goal)
	require.Equal(t, []scenario.Point{{3, 4}, {4, 4}, {5, 4}}, s.Walls)

	g, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, wavefront.Agent, g.Read(4, 0))
	require.Equal(t, wavefront.Goal, g.Read(4, 9))
	require.Equal(t, wavefront.Wall, g.Read(4, 4))
	cw, ch := g.CellSize()
	require.Equal(t, wavefront.DefaultCellWidth, cw)
	require.Equal(t, wavefront.DefaultCellHeight, ch)

	require.Equal(t, wavefront.Down, g.Propagate(nil))
	require.Equal(t, wavefront.Cell(5), g.Read(0, 9))
}

// TestLoad_JSONReadings marks sensor hits as walls and ignores the one that
// lands off the grid.
func TestLoad_JSONReadings(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "sensor.json"))
	require.NoError(t, err)
	require.Len(t, s.Readings, 3)

	g, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, wavefront.Wall, g.Read(4, 0))
	require.Equal(t, wavefront.Wall, g.Read(2, 2))
	require.Equal(t, wavefront.Agent, g.Read(2, 0))

	walls := 0
	for _, c := range wavefront.Snapshot(g) {
		if c == wavefront.Wall {
			walls++
		}
	}
	require.Equal(t, 2, walls)
}

// TestBuild_ReadingOnGoal keeps the goal marker when a reading hits it.
func TestBuild_ReadingOnGoal(t *testing.T) {
	s := scenario.Scenario{
		Width: 10, Height: 10,
		Agent:    scenario.Point{2, 0},
		Goal:     scenario.Point{4, 0},
		Readings: []scenario.Reading{{Angle: 0, Range: 50}},
	}
	g, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, wavefront.Goal, g.Read(4, 0))
}

func TestBuild_BadSize(t *testing.T) {
	_, err := scenario.Scenario{Width: 0, Height: 3}.Build()
	require.ErrorIs(t, err, wavefront.ErrBadDimensions)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		err  error
	}{
		{"NotYAML", "width: [1, 2", scenario.ErrInvalid},
		{"Empty", "", scenario.ErrInvalid},
		{"MissingGoal", "width: 3\nheight: 3\nagent: [0, 0]\n", scenario.ErrInvalid},
		{"ReservedWidth", "width: 255\nheight: 3\nagent: [0, 0]\ngoal: [1, 1]\n", scenario.ErrInvalid},
		{"UnknownField", "width: 3\nheight: 3\nagent: [0, 0]\ngoal: [1, 1]\ncolour: red\n", scenario.ErrInvalid},
		{"ShortPoint", "width: 3\nheight: 3\nagent: [0]\ngoal: [1, 1]\n", scenario.ErrInvalid},
		{"NegativeRange", "width: 3\nheight: 3\nagent: [0, 0]\ngoal: [1, 1]\nreadings: [{angle: 0, range: -1}]\n", scenario.ErrInvalid},
		{"SameCell", "width: 3\nheight: 3\nagent: [1, 1]\ngoal: [1, 1]\n", scenario.ErrInvalid},
		{"AgentOutside", "width: 3\nheight: 3\nagent: [3, 0]\ngoal: [1, 1]\n", scenario.ErrOutOfBounds},
		{"WallOutside", "width: 3\nheight: 3\nagent: [0, 0]\ngoal: [1, 1]\nwalls: [[0, 7]]\n", scenario.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tc.doc))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_WrapsPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("width: 3\n"), 0o644))
	_, err := scenario.Load(p)
	require.ErrorIs(t, err, scenario.ErrInvalid)
	require.Contains(t, err.Error(), p)
}

func TestLoad_WalledOff(t *testing.T) {
	s, err := scenario.Load(filepath.Join("testdata", "walled.yaml"))
	require.NoError(t, err)
	g, err := s.Build()
	require.NoError(t, err)
	require.Equal(t, wavefront.NoPath, g.Propagate(nil))
}

// TestParse_FieldNames decodes snake_case keys from both document formats.
func TestParse_FieldNames(t *testing.T) {
	docs := map[string]string{
		"YAML": "name: sized\nwidth: 4\nheight: 3\ncell_width: 20\ncell_height: 12.5\n" +
			"agent: [0, 0]\ngoal: [3, 2]\nwalls: [[1, 1]]\nreadings: [{angle: 90, range: 12.5}]\n",
		"JSON": `{"name":"sized","width":4,"height":3,"cell_width":20,"cell_height":12.5,` +
			`"agent":[0,0],"goal":[3,2],"walls":[[1,1]],"readings":[{"angle":90,"range":12.5}]}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			s, err := scenario.Parse([]byte(doc))
			require.NoError(t, err)
			require.Equal(t, "sized", s.Name)
			require.Equal(t, 20.0, s.CellWidth)
			require.Equal(t, 12.5, s.CellHeight)
			require.Equal(t, scenario.Point{3, 2}, s.Goal)
			require.Equal(t, []scenario.Point{{1, 1}}, s.Walls)
			require.Equal(t, []scenario.Reading{{Angle: 90, Range: 12.5}}, s.Readings)

			g, err := s.Build()
			require.NoError(t, err)
			cw, ch := g.CellSize()
			require.Equal(t, 20.0, cw)
			require.Equal(t, 12.5, ch)
			// 90° from (0,0) with one cell height of range lands on (0,1).
			require.Equal(t, wavefront.Wall, g.Read(0, 1))
		})
	}
}
