package domain

// Options is the per-run processing configuration assembled from the
// directive files. It is loaded exactly once at startup and passed by
// value; nothing mutates it afterwards.
type Options struct {
	Extensions ExtensionSet     // Qualifying filename extensions
	Format     FormatPreference // Output format directive
	Recursive  bool             // Directory traversal policy
}
