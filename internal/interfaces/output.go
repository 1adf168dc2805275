package interfaces

// OutputHandler delivers rendered configuration to a show or --print target
type OutputHandler interface {
	// WriteToClipboard replaces the clipboard contents
	WriteToClipboard(content string) error

	// WriteToStdout prints content unchanged
	WriteToStdout(content string) error

	// WriteToFile creates or truncates path and writes content to it
	WriteToFile(content string, path string) error
}
