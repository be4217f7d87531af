//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package viewer

// DisplayAvailable always reports true; macOS and Windows sessions have a desktop.
func DisplayAvailable() bool { return true }
