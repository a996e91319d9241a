package version

var (
	// version contains version of gcauth.
	version = "0.1.0"
	// commit contains commit hash of gcauth.
	commit = ""
)

// Version returns the version of gcauth.
func Version() string {
	return version
}

// Commit returns the commit hash of gcauth.
func Commit() string {
	return commit
}
