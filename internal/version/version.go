// Package version exposes the build identity stamped in at link time.
package version

// Version is overridden by the release build:
//
//	go build -ldflags "-X github.com/shelftrack/shelftrack/internal/version.Version=v1.2.3"
var Version = "dev"
