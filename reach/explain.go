package reach

import (
	"fmt"

	"github.com/katalvlaran/wavefront/wavefront"
)

// Verdict classifies the outcome of a propagation run.
type Verdict int

const (
	// Reachable: Propagate returned a direction.
	Reachable Verdict = iota
	// AgentMissing: no cell holds Agent.
	AgentMissing
	// GoalMissing: no cell holds Goal.
	GoalMissing
	// WalledOff: agent and goal lie in different open regions.
	WalledOff
	// BeyondBudget: a path exists but the wave did not reach the agent,
	// either because the sweep budget ran out or distances saturated.
	BeyondBudget
)

// String returns a short description of v.
func (v Verdict) String() string {
	switch v {
	case Reachable:
		return "reachable"
	case AgentMissing:
		return "agent missing"
	case GoalMissing:
		return "goal missing"
	case WalledOff:
		return "goal walled off"
	case BeyondBudget:
		return "beyond sweep budget"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Report is the result of Explain.
type Report struct {
	Verdict Verdict
	Agent   wavefront.GridPoint // OffGrid when missing
	Goal    wavefront.GridPoint // OffGrid when missing
	Steps   int                 // BFS steps agent→goal; -1 when not connected
	Regions int                 // number of open regions in the grid
}

// Explain inspects v after Propagate returned move and classifies the
// outcome. A move other than NoPath is always Reachable.
// Time: O(W·H). Memory: O(W·H).
func Explain(v wavefront.View, move wavefront.Direction) Report {
	r := Report{Steps: -1, Regions: len(Regions(v))}

	var hasAgent, hasGoal bool
	r.Agent, hasAgent = locate(v, wavefront.Agent)
	r.Goal, hasGoal = locate(v, wavefront.Goal)

	if hasAgent && hasGoal {
		if steps, err := Distance(v, r.Agent, r.Goal); err == nil {
			r.Steps = steps
		}
	}

	switch {
	case move != wavefront.NoPath:
		r.Verdict = Reachable
	case !hasAgent:
		r.Verdict = AgentMissing
	case !hasGoal:
		r.Verdict = GoalMissing
	case r.Steps < 0:
		r.Verdict = WalledOff
	default:
		r.Verdict = BeyondBudget
	}
	return r
}

// String formats r on one line.
func (r Report) String() string {
	return fmt.Sprintf("%s: agent=%s goal=%s steps=%d regions=%d",
		r.Verdict, r.Agent, r.Goal, r.Steps, r.Regions)
}
