// Package testutil provides filesystem helpers and fixture builders shared
// by wflink tests: descriptors, Alfred preference files, installed
// workflows, build files and throwaway git repositories.
//
// Every helper takes *testing.T and fails the test on setup errors, so
// callers never check errors from fixture construction.
package testutil
