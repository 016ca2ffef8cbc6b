// Package paths provides centralized path handling for modlink.
//
// It resolves the XDG locations used for the user configuration file and
// the log file, and normalizes the module and framework directories given
// on the command line into clean absolute paths.
package paths
