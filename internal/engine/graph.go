package engine

import (
	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Step Graph - Topological ordering with cycle detection
// ============================================================================

// stepGraph represents the depends_on relationships of one sibling step list
type stepGraph struct {
	steps        []config.SetupStep  // Steps in declaration order
	index        map[string]int      // Step name -> declaration index
	dependencies map[string][]string // Step -> list of dependencies
	dependents   map[string][]string // Step -> list of steps that depend on it
}

// OrderSteps returns the steps in a valid topological order.
// Zero in-degree steps are seeded in declaration order and dependents are
// released in declaration order, so the result is deterministic for a fixed
// configuration. A cycle fails with the offending chain before anything runs.
func OrderSteps(steps []config.SetupStep) ([]config.SetupStep, error) {
	graph := buildStepGraph(steps)

	ordered := graph.topologicalSort()
	if len(ordered) < len(steps) {
		// Not everything could be released: there is at least one cycle
		return nil, utils.ErrCircularSteps(graph.findCycle())
	}

	return ordered, nil
}

// buildStepGraph constructs the dependency graph from a sibling step list
func buildStepGraph(steps []config.SetupStep) *stepGraph {
	graph := &stepGraph{
		steps:        steps,
		index:        make(map[string]int, len(steps)),
		dependencies: make(map[string][]string, len(steps)),
		dependents:   make(map[string][]string),
	}

	for i, step := range steps {
		graph.index[step.Name] = i
		graph.dependencies[step.Name] = append([]string{}, step.DependsOn...)

		for _, dep := range step.DependsOn {
			graph.dependents[dep] = append(graph.dependents[dep], step.Name)
		}
	}

	return graph
}

// ============================================================================
// Private Helpers - Topological Sort
// ============================================================================

// topologicalSort performs Kahn's algorithm over the step graph.
// Returns fewer steps than the graph holds when a cycle blocks the rest.
func (g *stepGraph) topologicalSort() []config.SetupStep {
	// Calculate in-degree (number of dependencies) for each step
	inDegree := make(map[string]int, len(g.steps))
	for _, step := range g.steps {
		inDegree[step.Name] = len(g.dependencies[step.Name])
	}

	// Seed the queue with dependency-free steps in declaration order
	var queue []string
	for _, step := range g.steps {
		if inDegree[step.Name] == 0 {
			queue = append(queue, step.Name)
		}
	}

	var result []config.SetupStep
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, g.steps[g.index[current]])

		// Release dependents; iteration over the recorded dependent list
		// preserves declaration order because edges were added in order
		for _, dependent := range g.dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return result
}

// ============================================================================
// Private Helpers - Cycle Reporting
// ============================================================================

// findCycle walks the graph depth-first and returns the first cycle found,
// including the repeated step so the chain reads a -> b -> a
func (g *stepGraph) findCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	var path []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		for _, dep := range g.dependencies[name] {
			if recStack[dep] {
				// Trim the path to start at the repeated step
				start := 0
				for i, n := range path {
					if n == dep {
						start = i
						break
					}
				}
				cycle = append(append([]string{}, path[start:]...), dep)
				return true
			}
			if !visited[dep] {
				if visit(dep) {
					return true
				}
			}
		}

		recStack[name] = false
		path = path[:len(path)-1]
		return false
	}

	for _, step := range g.steps {
		if !visited[step.Name] {
			if visit(step.Name) {
				return cycle
			}
		}
	}

	return nil
}
