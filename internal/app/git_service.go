package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/example/science/internal/apperr"
	"github.com/example/science/internal/ports/secondary"
)

// GitService implements secondary.VersionControl by shelling out to git in
// the project's working tree.
type GitService struct {
	binary     string
	repoPath   string
	allowEmpty bool
}

// GitOptions configures a GitService.
type GitOptions struct {
	// Binary is the git executable. Empty means "git" on PATH.
	Binary string
	// AllowEmpty passes --allow-empty to git commit.
	AllowEmpty bool
}

// NewGitService creates a GitService that runs git inside repoPath.
func NewGitService(repoPath string, opts GitOptions) *GitService {
	binary := opts.Binary
	if binary == "" {
		binary = "git"
	}
	return &GitService{binary: binary, repoPath: repoPath, allowEmpty: opts.AllowEmpty}
}

// Commit creates a commit of the staged changes with message. A refused
// commit carries git's own explanation back to the user.
func (s *GitService) Commit(ctx context.Context, message string) error {
	args := []string{"commit", "-m", message}
	if s.allowEmpty {
		args = append(args, "--allow-empty")
	}

	stdout, stderr, err := s.runGitCommandOutput(ctx, args...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return apperr.VersionControl("failed to run `git commit`", err)
	}

	detail := strings.TrimSpace(stdout + "\n" + stderr)
	if detail == "" || !utf8.ValidString(detail) {
		return apperr.Specific(apperr.KindVersionControl, "`git commit` failed.", err)
	}
	return apperr.Specific(apperr.KindVersionControl, "`git commit` failed:\n\n"+detail, err)
}

// HeadRevision returns the SHA of HEAD.
func (s *GitService) HeadRevision(ctx context.Context) (string, error) {
	stdout, stderr, err := s.runGitCommandOutput(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", apperr.VersionControl("`git rev-parse HEAD` failed", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr)))
	}
	if !utf8.ValidString(stdout) {
		return "", apperr.VersionControl("`git rev-parse HEAD` returned invalid UTF-8 output", nil)
	}

	sha := strings.TrimSpace(stdout)
	if sha == "" {
		return "", apperr.VersionControl("`git rev-parse HEAD` returned no revision", nil)
	}
	return sha, nil
}

// runGitCommandOutput executes a git command and returns its stdout and stderr.
func (s *GitService) runGitCommandOutput(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Dir = s.repoPath
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var _ secondary.VersionControl = (*GitService)(nil)
