package version

// Version information populated by the build process
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// Info identifies one server binary
type Info struct {
	BinaryName string
	Version    string
	CommitHash string
	BuildTime  string
}

// For returns the build information of the named binary
func For(binaryName string) Info {
	return Info{
		BinaryName: binaryName,
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
	}
}

// String returns formatted version information
func (i Info) String() string {
	return i.BinaryName + " " + i.Version + " (commit: " + i.CommitHash + ", built: " + i.BuildTime + ")"
}
