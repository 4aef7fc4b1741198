package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey addresses one rendered output of a configuration.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
	// GaugeKey addresses the stored definition of a live gauge.
	GaugeKey(name string) string
}

// ArtifactKeyOpts are the render inputs besides the configuration itself.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Value      float64 `json:"value"`
	Animate    bool    `json:"animate,omitempty"`
	Title      string  `json:"title,omitempty"`
	Background string  `json:"background,omitempty"`
	Name       string  `json:"name,omitempty"`
}

// DefaultKeyer hashes artifact inputs and namespaces gauge names.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:" followed by a hash of the inputs.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

// GaugeKey returns "gauge:<name>".
func (DefaultKeyer) GaugeKey(name string) string {
	return "gauge:" + name
}
