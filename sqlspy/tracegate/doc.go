// Package tracegate decides whether a call's primary argument should trigger a stack-trace capture.
//
// A Gate holds one compiled pattern read from a properties file (key matchText) and refreshes it at most
// once per reload interval, so the gate can be switched on, retargeted or switched off while the process runs.
// Candidate text must match the pattern over its entire length.
//
// Example configuration file (sqlspy-config.properties in the working directory):
//
//	matchText=SELECT .* FROM accounts WHERE .*
//
// Readers never block on each other: the current configuration is an immutable snapshot, and only the
// goroutine that finds the snapshot stale takes the reload lock.
package tracegate
