// pkg/commands/status/status_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temp directories
// PURPOSE: Test status reporting leaves the filesystem untouched

package status_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wflink/pkg/commands/status"
	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	testutil.SkipOnWindows(t)

	repo := testutil.Repo(t, "com.example.wf")
	installRoot := t.TempDir()
	wf := testutil.InstallWorkflow(t, installRoot, "user.workflow.1", "com.example.wf", "A", "B", "C")
	testutil.CreateFile(t, wf, "A.png", "a")
	testutil.CreateSymlink(t, testutil.CreateFile(t, repo, "B.png", "b"), filepath.Join(wf, "B.png"))
	testutil.CreateFile(t, wf, "C.png", "c")
	testutil.BuildFile(t, repo, "info.plist", "B.png")

	result, err := status.Status(context.Background(), status.StatusOptions{
		RepoRoot:     repo,
		WorkflowsDir: installRoot,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)

	assert.Equal(t, "com.example.wf", result.BundleID)
	assert.Equal(t, wf, result.WorkflowPath)
	assert.Equal(t, []string{filepath.Join(wf, "A.png"), filepath.Join(wf, "C.png")}, result.Pending)
	assert.Equal(t, []string{"info.plist", "B.png"}, result.ManifestEntries)
	assert.Equal(t, filepath.Join(repo, "Makefile"), result.BuildFile)

	assert.False(t, testutil.SymlinkExists(t, filepath.Join(wf, "A.png")))
	testutil.AssertNoFile(t, filepath.Join(repo, "A.png"))
}

func TestStatus_NothingPending(t *testing.T) {
	repo := testutil.Repo(t, "com.example.wf")
	installRoot := t.TempDir()
	testutil.InstallWorkflow(t, installRoot, "user.workflow.1", "com.example.wf")

	result, err := status.Status(context.Background(), status.StatusOptions{
		RepoRoot:     repo,
		WorkflowsDir: installRoot,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Pending)
	assert.Empty(t, result.Pending)
}

func TestStatus_MissingMarker(t *testing.T) {
	repo := testutil.Repo(t, "com.example.wf")
	testutil.CreateFile(t, repo, "Makefile", "all:\n")
	installRoot := t.TempDir()
	testutil.InstallWorkflow(t, installRoot, "user.workflow.1", "com.example.wf")

	_, err := status.Status(context.Background(), status.StatusOptions{
		RepoRoot:     repo,
		WorkflowsDir: installRoot,
		Logger:       zerolog.Nop(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrMalformedData, errors.GetErrorCode(err))
}
