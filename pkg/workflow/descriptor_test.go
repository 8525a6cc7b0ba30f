// pkg/workflow/descriptor_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directories
// PURPOSE: Test descriptor loading and bundle id extraction

package workflow_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wflink/pkg/errors"
	"github.com/arthur-debert/wflink/pkg/filesystem"
	"github.com/arthur-debert/wflink/pkg/testutil"
	"github.com/arthur-debert/wflink/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDescriptor(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "info.plist", testutil.Descriptor("com.example.wf", "A", "B"))

	desc, err := workflow.LoadDescriptor(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "com.example.wf", desc.BundleID)
	assert.Equal(t, "com.example.wf", desc.Name)
	assert.Equal(t, filepath.Join(dir, "info.plist"), desc.Path)
	require.Len(t, desc.Objects, 2)
	assert.Equal(t, "A", desc.Objects[0].UID)
	assert.Equal(t, "B", desc.Objects[1].UID)
	assert.Equal(t, "alfred.workflow.input.scriptfilter", desc.Objects[0].Type)
}

func TestLoadDescriptor_NoObjects(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "info.plist", `<plist version="1.0"><dict>
		<key>bundleid</key><string>com.example.wf</string>
	</dict></plist>`)

	desc, err := workflow.LoadDescriptor(filesystem.NewOS(), dir)
	require.NoError(t, err)
	assert.Empty(t, desc.Objects)
}

func TestLoadDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.ErrorCode
	}{
		{
			name:     "objects not an array",
			content:  `<plist><dict><key>objects</key><string>nope</string></dict></plist>`,
			wantCode: errors.ErrMalformedData,
		},
		{
			name:     "object not a dict",
			content:  `<plist><dict><key>objects</key><array><string>A</string></array></dict></plist>`,
			wantCode: errors.ErrMalformedData,
		},
		{
			name: "object without uid",
			content: `<plist><dict><key>objects</key><array>
				<dict><key>uid</key><string>A</string></dict>
				<dict><key>type</key><string>x</string></dict>
			</array></dict></plist>`,
			wantCode: errors.ErrMalformedData,
		},
		{
			name:     "odd dict",
			content:  `<plist><dict><key>bundleid</key></dict></plist>`,
			wantCode: errors.ErrMalformedData,
		},
		{
			name:     "not xml",
			content:  `{"bundleid": "com.example.wf"}`,
			wantCode: errors.ErrMalformedData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.CreateFile(t, dir, "info.plist", tt.content)

			_, err := workflow.LoadDescriptor(filesystem.NewOS(), dir)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
		})
	}
}

func TestLoadDescriptor_Missing(t *testing.T) {
	_, err := workflow.LoadDescriptor(filesystem.NewOS(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrFileAccess, errors.GetErrorCode(err))
}

func TestReadBundleID(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "info.plist", testutil.Descriptor("com.example.wf"))

	bundleID, err := workflow.ReadBundleID(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.wf", bundleID)
}

func TestReadBundleID_Absent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "info.plist", `<plist><dict><key>name</key><string>x</string></dict></plist>`)

	_, err := workflow.ReadBundleID(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedData))
	assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
}

func TestReadBundleID_FirstKeyWins(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "info.plist", `<plist><dict>
		<key>bundleid</key><string>first</string>
		<key>bundleid</key><string>second</string>
	</dict></plist>`)

	bundleID, err := workflow.ReadBundleID(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.Equal(t, "first", bundleID)
}
