package forms

import "mime/multipart"

// FormCreateInput is the body of POST /forms.
type FormCreateInput struct {
	Body struct {
		Kind string `json:"kind" doc:"Form variant" enum:"contact,quote" example:"quote"`
	}
}

// FormGetInput identifies a form by path.
type FormGetInput struct {
	ID string `path:"id" doc:"Form identifier" format:"uuid"`
}

// FieldUpdateInput sets one field.
type FieldUpdateInput struct {
	ID    string `path:"id"    doc:"Form identifier" format:"uuid"`
	Field string `path:"field" doc:"Field name"      enum:"name,email,phone,service,message"`
	Body  struct {
		Value string `json:"value" doc:"New field value" example:"Sarah Johnson"`
	}
}

// AttachmentsReplaceInput carries the picked files as multipart "photos" parts.
type AttachmentsReplaceInput struct {
	ID      string `path:"id" doc:"Form identifier" format:"uuid"`
	RawBody multipart.Form
}

// AttachmentDeleteInput removes one attachment by position.
type AttachmentDeleteInput struct {
	ID    string `path:"id"    doc:"Form identifier"           format:"uuid"`
	Index int    `path:"index" doc:"Zero-based attachment index" minimum:"0"`
}
