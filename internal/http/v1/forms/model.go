package forms

// Attachment describes a selected file. File content is never echoed back.
type Attachment struct {
	Filename    string `json:"filename"    doc:"Original file name"  example:"driveway.jpg"`
	ContentType string `json:"contentType" doc:"Detected media type" example:"image/jpeg"`
	Size        int    `json:"size"        doc:"Size in bytes"       example:"204800"`
}

// Fields are the editable inputs of a form.
type Fields struct {
	Name        string       `json:"name"        doc:"Visitor name"                 example:"Sarah Johnson"`
	Email       string       `json:"email"       doc:"Reply address"                example:"sarah@example.com"`
	Phone       string       `json:"phone"       doc:"Optional phone number"        example:"0400 000 000"`
	Service     string       `json:"service"     doc:"Selected service identifier"  example:"pressure-washing"`
	Message     string       `json:"message"     doc:"Free text"                    example:"Driveway and back deck."`
	Attachments []Attachment `json:"attachments" doc:"Selected photos, quote forms only"`
}

// Form is the current state of an open form.
type Form struct {
	ID      string `json:"id"                doc:"Form identifier"                           example:"6f1c2b1e-3c1a-4a7e-9b8e-2d1f0c9a7b55"`
	Kind    string `json:"kind"              doc:"Form variant"                              example:"quote"    enum:"contact,quote"`
	Phase   string `json:"phase"             doc:"Submission phase"                          example:"idle"     enum:"idle,submitting,succeeded,failed"`
	Error   string `json:"error,omitempty"   doc:"Reason for the last failed submission"     example:"name required"`
	Message string `json:"message,omitempty" doc:"Backend acknowledgement after a success"   example:"Quote request submitted successfully! We'll contact you within 24 hours."`
	Fields  Fields `json:"fields"            doc:"Current field values"`
}
