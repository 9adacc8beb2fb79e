package email

// PreviewData holds sample values for every template, keyed by template name.
// It is used to render templates without a real recipient.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Aliya",
		"Username":      "aliya",
	},
}
