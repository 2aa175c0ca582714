// Package datasource provides the data contexts widgets render their labels
// against.
//
// A Source is polled by the scheduler (or on demand after a callback) and
// returns a fresh format.Context each time. The package ships the sources
// that need no operating system integration: fixed data, the wall clock and
// the output of a user command.
package datasource
