// Package commands implements CLI command handlers for route-ctl.
//
// Each subcommand implements the Runner interface:
//   - Init(): parse arguments, load configuration and open the route file manager
//   - Run(): execute the command and print JSON to the context output
//   - Name(): return the command name for dispatch
//
// # Available Commands
//
//   - list, find, delete: read or remove routes selected by a filter
//   - validate, create, update: operate on one route given as NAME and flags or -json
//   - batch-validate, batch-create, batch-update, batch-replace: operate on a
//     {"routes": [...]} JSON document
//   - serve: run the HTTP API
//   - check: compare the route file with the kernel routing table
//   - help: print usage
//
// Flags precede positional arguments, as with the standard flag package:
//
//	route-ctl -F routes.pp find -key network -partial-match 10.0.
//
// ExitCode maps the error returned by Init or Run to the process exit code.
package commands
