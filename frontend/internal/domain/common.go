package frontend_domain

import "github.com/aribt/hackathon-cms/frontend/internal/notify"

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	// Notifications drained from the queue for this render.
	Notifications []notify.Notification
	Authenticated bool
	Active        string // nav entry to highlight
	CSRFToken     string
	Validation    ValidationData
}

// ValidationData holds the upload limits the forms advertise.
type ValidationData struct {
	MaxUploadSize           int64
	AllowedImageMimeTypes   []string
	AllowedPaymentMimeTypes []string
}
