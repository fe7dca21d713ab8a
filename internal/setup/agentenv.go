// Package setup installs and removes devlog integration in agent coding
// environments: instruction-rule files, CLAUDE.md sections, and the git
// post-commit reminder hook.
package setup

import "slices"

// AgentEnv is one agent coding tool devlog knows how to integrate with.
// An implementation owns the full lifecycle of its instruction artifact:
// detect, install, remove, for both project and global scope.
type AgentEnv interface {
	// Name is the identifier used on the CLI, e.g. "claude".
	Name() string

	// DisplayName is what status and doctor print, e.g. "Claude Code".
	DisplayName() string

	// Detect looks for the artifact in either scope and reports where it
	// found one. Scope is "project" or "global".
	Detect() (path, scope string, installed bool)

	// Install writes the instruction artifact, project-local or global.
	Install(project bool) (path string, err error)

	// Remove deletes the artifact from the given scope.
	Remove(project bool) error

	// Check reports the artifact path and install state for one scope.
	Check(project bool) (path, scope string, installed bool, err error)
}

var registry = map[string]AgentEnv{}

// RegisterAgentEnv adds an implementation to the registry. Called from
// init functions in the per-tool files.
func RegisterAgentEnv(env AgentEnv) {
	registry[env.Name()] = env
}

// GetAgentEnv looks up an environment by CLI name, nil when unknown.
func GetAgentEnv(name string) AgentEnv {
	return registry[name]
}

// AllAgentEnvs returns the registry in a stable order, known tools first.
func AllAgentEnvs() []AgentEnv {
	order := []string{"claude", "cursor"}
	var result []AgentEnv
	for _, name := range order {
		if env, ok := registry[name]; ok {
			result = append(result, env)
		}
	}
	for name, env := range registry {
		if !slices.Contains(order, name) {
			result = append(result, env)
		}
	}
	return result
}

// DetectedAgentEnvs filters the registry to environments that currently
// have the integration installed somewhere.
func DetectedAgentEnvs() []AgentEnv {
	var detected []AgentEnv
	for _, env := range AllAgentEnvs() {
		if _, _, installed := env.Detect(); installed {
			detected = append(detected, env)
		}
	}
	return detected
}
