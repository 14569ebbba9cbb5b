// Package cli implements the ghusers command line.
//
// The root command lists GitHub login names, either enumerating all users
// by ascending id or searching by keyword, and prints one per line on
// stdout. Logs go to stderr. Configuration is read from config.yml, a .env
// file and the environment before flags are applied.
package cli
