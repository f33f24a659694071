// Package testdoubles provides test doubles (spies) for observability interfaces.
//
// ContextualLoggerSpy captures calls to a sqlspy.ContextualLogger, including the context of each call, so that
// tests can check both the record arguments and the logging-context channel.
package testdoubles
