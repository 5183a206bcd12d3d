// Package monitoring carries the process-wide diagnostic logger.
package monitoring

import "log"

// Logf is the diagnostic logger used by the dataset, asset and db packages.
// It defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces Logf and returns a func that restores the previous
// logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) (restore func()) {
	prev := Logf
	if f == nil {
		f = func(string, ...interface{}) {}
	}
	Logf = f
	return func() { Logf = prev }
}
