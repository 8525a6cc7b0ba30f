// Package filesystem provides the filesystem abstraction used by wflink.
//
// Components take an FS so tests can observe or intercept individual
// operations; NewOS returns the implementation backed by the os package.
package filesystem
