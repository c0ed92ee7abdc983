package version

// Build metadata injected via -ldflags at build time, e.g.
//   -ldflags "-X yuvsnap/internal/version.BuildNumber=42 -X yuvsnap/internal/version.GitCommit=abc123"
var (
    BuildNumber = "0"
    GitCommit   = "unknown"
)

// String returns a concise version string for logs and /health.
func String() string {
    if GitCommit == "unknown" || GitCommit == "" {
        return "yuvsnap build " + BuildNumber
    }
    return "yuvsnap build " + BuildNumber + " (" + GitCommit + ")"
}
