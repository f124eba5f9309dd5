package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/internal/git"
	"github.com/devup-cli/devup/internal/ui"
	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Type Definitions
// ============================================================================

// depsDirName is where remote dependencies are cloned, under the base path
const depsDirName = ".devup/deps"

// SourceControl is the client the resolver uses to materialize remote
// dependencies
type SourceControl interface {
	Clone(ctx context.Context, url, dest string) error
	Checkout(path, ref string) error
}

// ResolvedDependency is one materialized project dependency.
// Config is nil when the dependency carries no devup configuration.
type ResolvedDependency struct {
	Name   string         // Declared dependency name
	Path   string         // Directory the dependency was materialized into
	Config *config.Config // The dependency's own configuration, if any
}

// Resolver recursively materializes project dependencies. Its completion
// cache and resolution stack are instance state on a single control thread;
// Reset clears them between independent runs.
type Resolver struct {
	scm       SourceControl
	completed map[string]bool // Identity key -> fully resolved
	stack     []string        // Active resolution chain, for cycle detection
}

// New creates a resolver backed by the given source control client
func New(scm SourceControl) *Resolver {
	return &Resolver{
		scm:       scm,
		completed: make(map[string]bool),
	}
}

// NewDefault creates a resolver backed by the go-git client
func NewDefault() *Resolver {
	return New(git.NewClient())
}

// Reset clears the completion cache and resolution stack
func (r *Resolver) Reset() {
	r.completed = make(map[string]bool)
	r.stack = nil
}

// ============================================================================
// Public API
// ============================================================================

// ResolveDependencies materializes every dependency the configuration
// declares, depth-first, so dependencies of dependencies come earlier in the
// returned order. Returns immediately when none are declared. A cycle
// anywhere in the cross-project graph fails before cloning anything further
// in the cycle.
func (r *Resolver) ResolveDependencies(ctx context.Context, cfg *config.Config, basePath string) ([]ResolvedDependency, error) {
	if len(cfg.Dependencies) == 0 {
		return nil, nil
	}

	return r.resolveList(ctx, cfg.Dependencies, basePath)
}

// ============================================================================
// Private Methods - Recursive Resolution
// ============================================================================

// resolveList resolves one project's declared dependencies in order
func (r *Resolver) resolveList(ctx context.Context, deps []config.ProjectDependency, basePath string) ([]ResolvedDependency, error) {
	var resolved []ResolvedDependency

	for _, dep := range deps {
		branch, err := r.resolveOne(ctx, dep, basePath)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, branch...)
	}

	return resolved, nil
}

// resolveOne materializes a single dependency and, bottom-up, everything it
// depends on in turn
func (r *Resolver) resolveOne(ctx context.Context, dep config.ProjectDependency, basePath string) ([]ResolvedDependency, error) {
	key := identityKey(dep)

	// A key already on the active stack means the chain loops back on itself
	for _, active := range r.stack {
		if active == key {
			return nil, utils.ErrCircularProjects(append(append([]string{}, r.stack...), key))
		}
	}

	// Already fully resolved earlier in this run (diamond dependencies)
	if r.completed[key] {
		return nil, nil
	}

	r.stack = append(r.stack, key)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	depPath, err := r.materialize(ctx, dep, basePath)
	if err != nil {
		return nil, err
	}

	// The dependency's own configuration may be absent; that just means
	// there is nothing to set up beyond having the code present
	var depCfg *config.Config
	if config.Exists(depPath) {
		depCfg, err = config.Load(depPath)
		if err != nil {
			return nil, utils.Wrap(err, "resolver.config",
				fmt.Sprintf("Dependency '%s' has an invalid configuration", dep.Name))
		}
	}

	var resolved []ResolvedDependency

	// Resolve transitive dependencies first so setup runs bottom-up
	if depCfg != nil && len(depCfg.Dependencies) > 0 {
		transitive, err := r.resolveList(ctx, depCfg.Dependencies, depPath)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, transitive...)
	}

	resolved = append(resolved, ResolvedDependency{
		Name:   dep.Name,
		Path:   depPath,
		Config: depCfg,
	})

	r.completed[key] = true
	return resolved, nil
}

// ============================================================================
// Private Methods - Materialization
// ============================================================================

// materialize ensures the dependency's code exists on disk and returns its path
func (r *Resolver) materialize(ctx context.Context, dep config.ProjectDependency, basePath string) (string, error) {
	if dep.IsLocal() {
		return r.resolveLocal(dep, basePath)
	}
	return r.cloneRemote(ctx, dep, basePath)
}

// resolveLocal resolves a path dependency relative to the referencing project
func (r *Resolver) resolveLocal(dep config.ProjectDependency, basePath string) (string, error) {
	depPath := dep.Path
	if !filepath.IsAbs(depPath) {
		depPath = filepath.Join(basePath, depPath)
	}

	if _, err := os.Stat(depPath); os.IsNotExist(err) {
		return "", utils.ErrLocalDependencyNotFound(dep.Name, depPath)
	}

	return depPath, nil
}

// cloneRemote clones a repository dependency into its deterministic
// destination, checking out the pinned branch or tag when one is given
func (r *Resolver) cloneRemote(ctx context.Context, dep config.ProjectDependency, basePath string) (string, error) {
	if !git.IsValidRemoteURL(dep.Repository) {
		return "", utils.ErrInvalidRepository(dep.Name, dep.Repository)
	}

	dest := filepath.Join(basePath, depsDirName, dep.Name)

	// A leftover destination from an interrupted run is stale: wipe it and
	// clone fresh. Completed clones never reach this point in the same run.
	if _, err := os.Stat(dest); err == nil {
		if err := os.RemoveAll(dest); err != nil {
			return "", utils.FileError("resolver.clean",
				fmt.Sprintf("Failed to remove stale clone at %s", dest), "", err)
		}
	}

	err := ui.WithProgress(fmt.Sprintf("Cloning %s", dep.Name), func() error {
		if err := r.scm.Clone(ctx, dep.Repository, dest); err != nil {
			return err
		}

		ref := ""
		if dep.Branch != "" {
			ref = dep.Branch
		} else if dep.Tag != "" {
			ref = dep.Tag
		}
		if ref != "" {
			return r.scm.Checkout(dest, ref)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return dest, nil
}

// identityKey builds the identity of a dependency:
// <repository-or-path>#<branch-or-tag-or-"main">
func identityKey(dep config.ProjectDependency) string {
	return dep.Source() + "#" + dep.Ref()
}
