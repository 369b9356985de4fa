package cache

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey identifies a laid-out scene.
	SceneKey(specHash, messagesHash string, opts SceneKeyOpts) string
	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the layout inputs besides silhouette and messages.
type SceneKeyOpts struct {
	Seed       uint64 `json:"seed"`
	Lights     int    `json:"lights"`
	Snowflakes int    `json:"snowflakes"`
	// Options is the hash of the remaining layout options.
	Options string `json:"options,omitempty"`
}

// ArtifactKeyOpts are the rendering inputs.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Style    string `json:"style"`
	Animated bool   `json:"animated,omitempty"`
	Snow     bool   `json:"snow,omitempty"`
	// Page is the hash of the page options for HTML output.
	Page string `json:"page,omitempty"`
}

// DefaultKeyer hashes all inputs into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(specHash, messagesHash string, opts SceneKeyOpts) string {
	return hashKey("scene", specHash, messagesHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneKey, opts)
}
