package types

// BuildConfig holds the fully resolved settings for one build run.
// Values come from the book manifest, the config file, and command-line
// flags, with flags taking precedence.
type BuildConfig struct {
	// Title is the document title printed on the title page.
	Title string `json:"title" yaml:"title"`

	// Author is the document author printed on the title page.
	Author string `json:"author" yaml:"author"`

	// Sources lists the manuscript files in reading order. The order is
	// preserved exactly; chapters are never sorted or deduplicated.
	Sources []string `json:"sources" yaml:"sources"`

	// Basepath is prepended to every relative source path.
	Basepath string `json:"basepath" yaml:"basepath"`

	// Output is the base name of the generated files (Output + ".tex",
	// Output + ".pdf").
	Output string `json:"output" yaml:"output"`

	// OutputDir is the directory the generated files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Language is an explicit language tag (e.g. "en", "sv"). When empty
	// the language is detected from the manuscript text.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// TemplatePath points at a custom document template. When empty the
	// embedded template is used.
	TemplatePath string `json:"template,omitempty" yaml:"template,omitempty"`

	// WideLineSpacing switches the document to one-and-a-half line spacing.
	WideLineSpacing bool `json:"wide_line_spacing" yaml:"wide_line_spacing"`

	// NoPDF stops the build after writing the .tex source, skipping the
	// typesetting engine entirely.
	NoPDF bool `json:"no_pdf" yaml:"no_pdf"`
}

// HistoryConfig holds settings for the build history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default ".bookpress").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default number of entries shown by the history
	// command (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WatchConfig holds settings for the rebuild-on-change mode.
type WatchConfig struct {
	// DebounceMillis is the quiet period after a file event before a
	// rebuild is triggered (default 500).
	DebounceMillis int `json:"debounce_millis" yaml:"debounce_millis"`
}
