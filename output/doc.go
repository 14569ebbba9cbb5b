// Package output renders Records as lines of text.
package output
