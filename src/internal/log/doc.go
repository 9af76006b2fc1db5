// Package log provides simple leveled logging for route-ctl.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages (hidden in quiet mode)
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures and exceptions
//
// # Example Usage
//
//	log.Infof("parsing routes from route file %s", path)
//	log.Warnf("route file not found at %s, starting empty", path)
//	log.Errorf("failed to rewrite routes: %v", err)
//
// The CLI prints JSON documents to stdout, so it calls SetForceStdErr(true)
// to keep log lines out of the command output:
//
//	log.SetForceStdErr(true)
//	log.SetVerbose(true)
//	log.Debugf("matched %d routes", n)
package log
