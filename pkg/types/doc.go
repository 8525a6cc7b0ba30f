// Package types holds the result values commands return to the CLI layer.
package types
