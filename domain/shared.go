package domain

// OutputFormat represents the supported output formats.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
)

// FileReader defines the interface for reading a single Python source file
// and checking the entry path before any parsing starts.
type FileReader interface {
	// ReadFile reads the content of a file.
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file.
	IsValidPythonFile(path string) bool

	// FileExists checks if a file exists and returns an error if not.
	FileExists(path string) (bool, error)
}
