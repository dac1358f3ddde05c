package graph

// --- Enums ---

// IncludeKind selects how an include directive's path is resolved.
type IncludeKind string

const (
	// IncludeVirtual resolves against the scan root.
	IncludeVirtual IncludeKind = "virtual"
	// IncludeFile resolves against the including file's directory.
	IncludeFile IncludeKind = "file"
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	EdgeKindIncludes EdgeKind = "INCLUDES"
)

// --- Models ---

// NodeID is a handle to a node owned by a Registry. IDs are assigned densely
// in registration order starting at zero.
type NodeID int

// FileNode represents one discovered source file.
type FileNode struct {
	Path string `json:"path"` // display label, relative to the scan root
	Key  string `json:"key"`  // absolute lookup path
}

// SourceRef identifies a discovered file before registration.
type SourceRef struct {
	Path string // display label
	Key  string // absolute path
}

// Include is one include directive found in a file's text.
type Include struct {
	Kind IncludeKind `json:"kind"`
	Ref  string      `json:"ref"` // path to join with the base directory
	Raw  string      `json:"raw"` // captured attribute value as written
}

// Edge represents a relationship between two nodes, by display path.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
}

// GraphStats summarizes an include graph.
type GraphStats struct {
	FileCount int `json:"fileCount"`
	EdgeCount int `json:"edgeCount"`
}

// DependencyChain is an ordered sequence of nodes forming a dependency path.
type DependencyChain struct {
	Nodes []string `json:"nodes"` // node paths in order
	Depth int      `json:"depth"`
}

// Unresolved records an include whose target is not a registered file.
type Unresolved struct {
	SourcePath string      `json:"sourcePath"`
	Kind       IncludeKind `json:"kind"`
	Ref        string      `json:"ref"`
	LookupKey  string      `json:"lookupKey"`
}
