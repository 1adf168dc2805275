package interfaces

// TemplateData contains all variables available to title, caption, header
// and banner templates
type TemplateData struct {
	Path   string `json:"path"`
	Fields int    `json:"fields"`
}

// TextRenderer expands the text templates of the session options
type TextRenderer interface {
	// Render executes the template text with the provided data
	Render(text string, data TemplateData) (string, error)
}
