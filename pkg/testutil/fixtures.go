package testutil

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultBuildFile and DefaultMarker match the embedded configuration
const (
	DefaultBuildFile = "Makefile"
	DefaultMarker    = "WORKFLOW_FILES ="
)

// Descriptor renders an info.plist document declaring bundleID and one
// object per uid, in order
func Descriptor(bundleID string, uids ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n<dict>\n")
	fmt.Fprintf(&b, "\t<key>bundleid</key>\n\t<string>%s</string>\n", bundleID)
	fmt.Fprintf(&b, "\t<key>name</key>\n\t<string>%s</string>\n", bundleID)
	b.WriteString("\t<key>objects</key>\n\t<array>\n")
	for _, uid := range uids {
		b.WriteString("\t\t<dict>\n")
		b.WriteString("\t\t\t<key>type</key>\n\t\t\t<string>alfred.workflow.input.scriptfilter</string>\n")
		fmt.Fprintf(&b, "\t\t\t<key>uid</key>\n\t\t\t<string>%s</string>\n", uid)
		b.WriteString("\t\t\t<key>version</key>\n\t\t\t<integer>3</integer>\n")
		b.WriteString("\t\t</dict>\n")
	}
	b.WriteString("\t</array>\n</dict>\n</plist>\n")
	return b.String()
}

// Prefs writes an Alfred prefs.json naming preferencesRoot as the active
// root and returns its path
func Prefs(t *testing.T, dir, preferencesRoot string) string {
	t.Helper()

	data, err := json.Marshal(map[string]interface{}{
		"current":    preferencesRoot,
		"syncfolder": filepath.Dir(preferencesRoot),
	})
	if err != nil {
		t.Fatalf("Failed to encode prefs: %v", err)
	}
	return CreateFile(t, dir, "prefs.json", string(data))
}

// InstallWorkflow creates {installRoot}/{dirName} with a descriptor for
// bundleID declaring uids, and returns the workflow directory
func InstallWorkflow(t *testing.T, installRoot, dirName, bundleID string, uids ...string) string {
	t.Helper()

	dir := CreateDir(t, installRoot, dirName)
	CreateFile(t, dir, "info.plist", Descriptor(bundleID, uids...))
	return dir
}

// BuildFile writes a Makefile at dir whose manifest line lists entries
func BuildFile(t *testing.T, dir string, entries ...string) string {
	t.Helper()

	line := DefaultMarker
	if len(entries) > 0 {
		line += " " + strings.Join(entries, " ")
	}
	content := "NAME = example\n" + line + "\n\nbuild:\n\tzip -r $(NAME).alfredworkflow $(WORKFLOW_FILES)\n"
	return CreateFile(t, dir, DefaultBuildFile, content)
}

// Repo builds a repository directory holding its own descriptor for
// bundleID and a build file. It is not a git repository; use GitInit for that.
func Repo(t *testing.T, bundleID string) string {
	t.Helper()

	dir := RealPath(t, t.TempDir())
	CreateFile(t, dir, "info.plist", Descriptor(bundleID))
	BuildFile(t, dir, "info.plist")
	return dir
}

// GitInit turns dir into a git repository, skipping the test when git is
// not installed
func GitInit(t *testing.T, dir string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	cmd := exec.Command("git", "init", "-q", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init %s failed: %v\n%s", dir, err, out)
	}
}
