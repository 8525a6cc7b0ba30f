// pkg/commands/locate/locate_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temp directories
// PURPOSE: Test locating workflows by explicit and repository bundle id

package locate_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/wflink/pkg/commands/locate"
	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/testutil"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_FromRepository(t *testing.T) {
	repo := testutil.Repo(t, "com.example.wf")
	installRoot := t.TempDir()
	want := testutil.InstallWorkflow(t, installRoot, "user.workflow.1", "com.example.wf")

	result, err := locate.Locate(context.Background(), locate.LocateOptions{
		RepoRoot:     repo,
		WorkflowsDir: installRoot,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, want, result.WorkflowPath)
	assert.Nil(t, result.Installed)
}

func TestLocate_ExplicitBundleIDAndAll(t *testing.T) {
	installRoot := t.TempDir()
	a := testutil.InstallWorkflow(t, installRoot, "a", "com.example.a")
	b := testutil.InstallWorkflow(t, installRoot, "b", "com.example.b")

	result, err := locate.Locate(context.Background(), locate.LocateOptions{
		BundleID:     "com.example.b",
		WorkDir:      t.TempDir(),
		WorkflowsDir: installRoot,
		All:          true,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, b, result.WorkflowPath)
	assert.Empty(t, result.RepoRoot)
	assert.Equal(t, []workflow.Installed{
		{Path: a, BundleID: "com.example.a"},
		{Path: b, BundleID: "com.example.b"},
	}, result.Installed)
}

func TestLocate_NotFound(t *testing.T) {
	_, err := locate.Locate(context.Background(), locate.LocateOptions{
		BundleID:     "com.example.none",
		WorkflowsDir: t.TempDir(),
		Logger:       zerolog.Nop(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(err))
}
