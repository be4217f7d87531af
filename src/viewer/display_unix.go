//go:build linux || freebsd || openbsd || netbsd || dragonfly

package viewer

import "os"

// DisplayAvailable reports whether an X11 or Wayland display can be opened.
func DisplayAvailable() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
