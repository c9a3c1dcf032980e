package widgets

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// workDir returns the directory git widgets inspect: the workspace
// current_dir when set, otherwise cwd.
func workDir(data *SessionData) (string, bool) {
	if data == nil {
		return "", false
	}
	if data.Workspace != nil && data.Workspace.CurrentDir != nil && *data.Workspace.CurrentDir != "" {
		return *data.Workspace.CurrentDir, true
	}
	if data.Cwd != nil && *data.Cwd != "" {
		return *data.Cwd, true
	}
	return "", false
}

// openRepo opens the repository containing dir, walking up like git does.
func openRepo(dir string) (*git.Repository, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, false
	}
	return repo, true
}

// GitBranchWidget shows the current branch name, or a short commit hash
// when HEAD is detached. Hidden outside a repository.
type GitBranchWidget struct{}

func (GitBranchWidget) Name() string { return "git-branch" }

func (GitBranchWidget) Render(data *SessionData, _ Config) Output {
	dir, ok := workDir(data)
	if !ok {
		return hidden(50)
	}
	repo, ok := openRepo(dir)
	if !ok {
		return hidden(50)
	}

	head, err := repo.Head()
	if err != nil {
		// Fresh repo with no commits yet.
		return hidden(50)
	}
	if head.Name().IsBranch() {
		return textOutput(head.Name().Short(), 50)
	}
	return textOutput(head.Hash().String()[:7], 50)
}

// GitStatusWidget shows worktree cleanliness: a check mark when clean,
// "±N" with a yellow hint when N entries differ from HEAD.
type GitStatusWidget struct{}

func (GitStatusWidget) Name() string { return "git-status" }

func (GitStatusWidget) Render(data *SessionData, cfg Config) Output {
	dir, ok := workDir(data)
	if !ok {
		return hidden(50)
	}
	repo, ok := openRepo(dir)
	if !ok {
		return hidden(50)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return hidden(50)
	}
	status, err := wt.Status()
	if err != nil {
		return hidden(50)
	}

	dirty := 0
	for _, st := range status {
		if st.Worktree != git.Unmodified || st.Staging != git.Unmodified {
			dirty++
		}
	}

	if cfg.Raw {
		return textOutput(fmt.Sprintf("%d", dirty), 50)
	}
	if dirty == 0 {
		return hintedOutput("✓", 50, "green")
	}
	return hintedOutput(fmt.Sprintf("±%d", dirty), 50, "yellow")
}

// GitWorktreeWidget shows the directory name when it is a linked worktree
// (its .git is a file pointing at the main repository). Hidden in a
// primary checkout.
type GitWorktreeWidget struct{}

func (GitWorktreeWidget) Name() string { return "git-worktree" }

func (GitWorktreeWidget) Render(data *SessionData, _ Config) Output {
	dir, ok := workDir(data)
	if !ok {
		return hidden(50)
	}

	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil || info.IsDir() {
		return hidden(50)
	}
	return textOutput(filepath.Base(dir), 50)
}
