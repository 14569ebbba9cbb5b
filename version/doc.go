// Package version reports the build of the ghusers binary.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/ghusers/version.Version=1.2.0" ./cmd/ghusers
//
// When they are not, the VCS stamps recorded by the Go toolchain are used.
package version
