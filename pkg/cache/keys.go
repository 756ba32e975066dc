package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered preview or export of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	// DiagramKey identifies an item-tree diagram of a document.
	DiagramKey(docHash string, opts DiagramKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	ShowBounds bool    `json:"show_bounds,omitempty"`
	Bounds     string  `json:"bounds,omitempty"`
	Artboards  bool    `json:"artboards,omitempty"`
	Background string  `json:"background,omitempty"`
	Segments   int     `json:"segments,omitempty"`
	Selection  bool    `json:"selection,omitempty"`
}

// DiagramKeyOpts holds the diagram options that change the output bytes.
type DiagramKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the document hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// DiagramKey implements Keyer.
func (DefaultKeyer) DiagramKey(docHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", docHash, opts)
}
