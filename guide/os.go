package guide

import "fmt"

// OS selects which branch of an OS specific step is shown.
// The zero value means no OS has been chosen.
type OS string

const (
	OSUnspecified OS = ""
	OSMacOSLinux  OS = "macos_linux"
	OSWindows     OS = "windows"
)

var SupportedOS = []OS{OSMacOSLinux, OSWindows}

func (o OS) Label() string {
	switch o {
	case OSMacOSLinux:
		return "macOS / Linux"
	case OSWindows:
		return "Windows"
	default:
		return "not selected"
	}
}

func (o OS) String() string {
	return string(o)
}

// Other returns the opposite OS. Unspecified toggles to macOS / Linux.
func (o OS) Other() OS {
	if o == OSMacOSLinux {
		return OSWindows
	}
	return OSMacOSLinux
}

func ParseOS(s string) (OS, error) {
	switch s {
	case "":
		return OSUnspecified, nil
	case string(OSMacOSLinux), "macos", "linux", "darwin":
		return OSMacOSLinux, nil
	case string(OSWindows):
		return OSWindows, nil
	}
	return OSUnspecified, fmt.Errorf("unsupported os %q: expected one of %q, %q", s, OSMacOSLinux, OSWindows)
}
