// Package types holds the interfaces shared between modlink packages.
package types
