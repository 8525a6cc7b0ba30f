// Package workflow reads Alfred workflow descriptors, finds an installed
// workflow by bundle identifier and scans it for icon assets that have not
// been replaced by symbolic links yet.
//
// Descriptors are info.plist files. Only three fields are consumed:
//
//	bundleid  string, the workflow's identity
//	name      string, informational
//	objects   array of dicts, each with a uid string
//
// By convention each object may have an icon named {uid}.png next to the
// descriptor. Descriptors are re-read on every call; nothing is cached.
package workflow
