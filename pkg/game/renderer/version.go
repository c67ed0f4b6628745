package renderer

// Build information, set with -ldflags "-X quickhacks/pkg/game/renderer.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
)
