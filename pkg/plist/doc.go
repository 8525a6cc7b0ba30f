// Package plist reads the XML property lists that describe Alfred workflows.
//
// A <dict> is modelled as an ordered sequence of key/value pairs rather than a
// map: keys may repeat and only the first occurrence is ever observed.
// Building a Dict checks the alternating key/value layout once, so lookups
// never have to.
//
// Only the element types that appear in property lists are accepted; this is
// not a general XML reader.
package plist
