package domain

// RootPriority orders knowledge-base roots by search priority.
// Lower values rank higher.
type RootPriority int

// Knowledge-base root priorities.
const (
	// RootPrimary is the rules file in the workspace root.
	RootPrimary RootPriority = iota

	// RootSecondary is the documentation folder tree.
	RootSecondary
)

// String returns the string representation.
func (p RootPriority) String() string {
	switch p {
	case RootPrimary:
		return "primary"
	case RootSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// SearchRoot is one searchable location within the knowledge base.
type SearchRoot struct {
	// Path is the absolute path to the file or directory.
	Path string

	// Priority determines search order and ranking weight.
	Priority RootPriority
}

// ListingEntry describes one knowledge-base file or directory.
type ListingEntry struct {
	// Path is relative to the workspace root.
	Path string

	// SizeBytes is the file size. Zero for directories.
	SizeBytes int64

	// Dir marks directory entries.
	Dir bool

	// FileCount is the number of entries in a directory.
	FileCount int

	// Root identifies which root the entry belongs to.
	Root RootPriority
}

// Listing is the structural view of the knowledge base.
type Listing struct {
	// Workspace is the absolute workspace path.
	Workspace string

	// Entries are the knowledge-base files, primary root first.
	Entries []ListingEntry
}
