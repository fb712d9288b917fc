package version

// Version is the algowiki release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/algowiki/internal/version.Version=v0.3.0".
var Version = "dev"

// Build metadata injected alongside Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
