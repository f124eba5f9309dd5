package git

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Client - go-git backed source control operations
// ============================================================================

// Client performs the clone and checkout operations the dependency resolver
// needs. It is stateless; all state lives in the repositories it touches.
type Client struct{}

// NewClient creates a source control client
func NewClient() *Client {
	return &Client{}
}

// remoteURLPattern accepts https/http/ssh/git URLs and scp-like git@ remotes
var remoteURLPattern = regexp.MustCompile(`^(https?://|ssh://|git://|git@)[\w.\-~]+[:/]`)

// IsValidRemoteURL reports whether url looks like a usable git remote
func IsValidRemoteURL(url string) bool {
	return remoteURLPattern.MatchString(strings.TrimSpace(url))
}

// ============================================================================
// Clone and Checkout
// ============================================================================

// Clone clones a repository into dest, streaming progress to stdout.
// A partial clone left behind by a failure is removed.
func (c *Client) Clone(ctx context.Context, url, dest string) error {
	_, err := gogit.PlainCloneContext(ctx, dest, false, &gogit.CloneOptions{
		URL:      url,
		Progress: os.Stdout,
	})
	if err != nil {
		// Clean up the partial clone so a retry starts fresh
		os.RemoveAll(dest)

		if ctx.Err() != nil {
			return utils.GitError("git.clone", "Clone cancelled", "", ctx.Err())
		}
		return utils.GitError("git.clone",
			fmt.Sprintf("Failed to clone %s", url),
			"Check the repository URL and your access rights", err)
	}

	return nil
}

// Checkout switches the repository at path to the given branch or tag.
// Branches are tried first (remote branches get a local branch created for
// them); tags and raw revisions are resolved as a fallback.
func (c *Client) Checkout(path, ref string) error {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return utils.GitError("git.checkout",
			fmt.Sprintf("Failed to open repository at %s", path), "", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return utils.GitError("git.checkout", "Failed to get worktree", "", err)
	}

	// Local branch
	branchRef := plumbing.NewBranchReferenceName(ref)
	if _, err := repo.Reference(branchRef, true); err == nil {
		return checkoutRef(worktree, ref, &gogit.CheckoutOptions{Branch: branchRef})
	}

	// Remote branch: create a local branch tracking it, then check it out
	remoteRef := plumbing.NewRemoteReferenceName("origin", ref)
	if resolved, err := repo.Reference(remoteRef, true); err == nil {
		newRef := plumbing.NewHashReference(branchRef, resolved.Hash())
		if err := repo.Storer.SetReference(newRef); err != nil {
			return utils.GitError("git.checkout",
				fmt.Sprintf("Failed to create local branch %s", ref), "", err)
		}
		return checkoutRef(worktree, ref, &gogit.CheckoutOptions{Branch: branchRef})
	}

	// Tag
	tagRef := plumbing.NewTagReferenceName(ref)
	if _, err := repo.Reference(tagRef, true); err == nil {
		return checkoutRef(worktree, ref, &gogit.CheckoutOptions{Branch: tagRef})
	}

	// Raw revision (commit hash or anything rev-parse understands)
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return utils.GitError("git.checkout",
			fmt.Sprintf("Reference '%s' not found in repository", ref),
			"Check the branch or tag name", err)
	}
	return checkoutRef(worktree, ref, &gogit.CheckoutOptions{Hash: *hash})
}

// checkoutRef performs the worktree checkout with a consistent error shape
func checkoutRef(worktree *gogit.Worktree, ref string, opts *gogit.CheckoutOptions) error {
	if err := worktree.Checkout(opts); err != nil {
		return utils.GitError("git.checkout",
			fmt.Sprintf("Failed to check out '%s'", ref), "", err)
	}
	return nil
}

// ============================================================================
// Repository Inspection
// ============================================================================

// RepoExistsAt checks if a git repository exists at the given path
func RepoExistsAt(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}

	_, err := gogit.PlainOpen(path)
	return err == nil
}

// CurrentBranch returns the name of the repository's current branch
func CurrentBranch(path string) (string, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return "", utils.GitError("git.branch",
			fmt.Sprintf("Failed to open repository at %s", path), "", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", utils.GitError("git.branch", "Failed to get HEAD", "", err)
	}

	if !head.Name().IsBranch() {
		return "", utils.GitError("git.branch", "Repository is in detached HEAD state", "", nil)
	}

	return head.Name().Short(), nil
}
