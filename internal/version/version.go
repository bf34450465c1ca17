// Package version tracks build metadata for the application.
package version

// Info describes build metadata for the application.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
}

var info = Info{Version: "dev"}

// Set updates the version metadata reported by the application. It is
// called once from main before anything else starts.
func Set(v Info) {
	if v.Version == "" {
		v.Version = "dev"
	}
	info = v
}

// Current returns the currently configured build metadata.
func Current() Info {
	return info
}
