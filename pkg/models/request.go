package models

// SessionRequest holds what the command line asked for
type SessionRequest struct {
	SchemaPath string
	File       string
	Fields     []string
	Title      string
	NoTitle    bool
	Caption    string
	Headers    []string
	Banner     string
	HideIndex  bool
	ShowLines  bool
	NoClear    bool
	Plain      bool
	Format     string
	Target     string
	Print      bool
	Verbose    bool
	Debug      bool
}

// NewSessionRequest creates a request with all settings left to the schema
// file, the environment and the defaults
func NewSessionRequest() *SessionRequest {
	return &SessionRequest{}
}
