package domain

// Platform identifies which local-environment backend governs a site.
type Platform string

const (
	PlatformDDEV    Platform = "ddev"
	PlatformLando   Platform = "lando"
	PlatformUnknown Platform = "unknown"
)

// SiteStatus is the canonical observed state of a managed site.
type SiteStatus string

const (
	StatusRunning SiteStatus = "running"
	StatusStopped SiteStatus = "stopped"
	StatusError   SiteStatus = "error"
)

// SiteDescriptor holds the freshly derived facts about one managed site.
// It is computed on every lifecycle call by inspecting the site directory;
// no descriptor is ever cached, so a manually reconfigured directory is
// always honored.
type SiteDescriptor struct {
	Name      string
	Directory string
	Platform  Platform
}
