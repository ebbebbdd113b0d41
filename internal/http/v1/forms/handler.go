package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gabriel-vasile/mimetype"

	"github.com/aurex-exteriors/site/internal/intake"
	formsvc "github.com/aurex-exteriors/site/internal/service/forms"
)

const photosField = "photos"

// Register wires the form routes. maxUploadBytes bounds the attachments request body.
func Register(api huma.API, svc formsvc.Service, prefix string, maxUploadBytes int64) {
	huma.Register(api, huma.Operation{
		OperationID:   "open-form",
		Method:        http.MethodPost,
		Path:          "/forms",
		Summary:       "Open a form",
		Description:   "Creates an empty contact or quote form in the idle phase.",
		Tags:          []string{"Forms"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *FormCreateInput) (*FormCreateOutput, error) {
		f, err := svc.Open(ctx, intake.Kind(input.Body.Kind))
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormCreateOutput{
			Location: prefix + "/forms/" + url.PathEscape(f.ID()),
			Body:     toHTTPForm(f.ID(), f.Kind(), f.State()),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-form",
		Method:      http.MethodGet,
		Path:        "/forms/{id}",
		Summary:     "Get a form",
		Description: "Returns the current fields and submission phase of a form.",
		Tags:        []string{"Forms"},
	}, func(ctx context.Context, input *FormGetInput) (*FormOutput, error) {
		f, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(f.ID(), f.Kind(), f.State())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-form-field",
		Method:      http.MethodPatch,
		Path:        "/forms/{id}/fields/{field}",
		Summary:     "Change a field",
		Description: "Sets exactly one field and clears any previous submission error. Rejected while the form is submitting.",
		Tags:        []string{"Forms"},
	}, func(ctx context.Context, input *FieldUpdateInput) (*FormOutput, error) {
		field, err := intake.ParseField(input.Field)
		if err != nil {
			return nil, mapServiceError(err)
		}
		f, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		state, err := f.Change(field, input.Body.Value)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(f.ID(), f.Kind(), state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:  "replace-form-attachments",
		Method:       http.MethodPut,
		Path:         "/forms/{id}/attachments",
		Summary:      "Select files",
		Description:  "Replaces the attached photos of a quote form with the uploaded \"photos\" parts. An upload without parts clears the selection.",
		Tags:         []string{"Forms"},
		MaxBodyBytes: maxUploadBytes,
	}, func(ctx context.Context, input *AttachmentsReplaceInput) (*FormOutput, error) {
		defer func() { _ = input.RawBody.RemoveAll() }()

		f, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		files, err := readAttachments(input.RawBody.File[photosField])
		if err != nil {
			return nil, huma.Error400BadRequest("unreadable upload", err)
		}
		state, err := f.SetAttachments(files)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(f.ID(), f.Kind(), state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-form-attachment",
		Method:      http.MethodDelete,
		Path:        "/forms/{id}/attachments/{index}",
		Summary:     "Remove a file",
		Description: "Removes the attachment at the given position; the others keep their order.",
		Tags:        []string{"Forms"},
	}, func(ctx context.Context, input *AttachmentDeleteInput) (*FormOutput, error) {
		f, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		state, err := f.RemoveAttachment(input.Index)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(f.ID(), f.Kind(), state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-form",
		Method:      http.MethodPost,
		Path:        "/forms/{id}/submit",
		Summary:     "Submit a form",
		Description: "Validates the form and sends it to the intake backend. Validation and backend failures are reported in the returned state with phase \"failed\".",
		Tags:        []string{"Forms"},
	}, func(ctx context.Context, input *FormGetInput) (*FormOutput, error) {
		f, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		state, err := f.Submit(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &FormOutput{Body: toHTTPForm(f.ID(), f.Kind(), state)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "discard-form",
		Method:        http.MethodDelete,
		Path:          "/forms/{id}",
		Summary:       "Discard a form",
		Description:   "Closes the form and cancels any pending reset.",
		Tags:          []string{"Forms"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *FormGetInput) (*struct{}, error) {
		if err := svc.Discard(ctx, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, formsvc.ErrNotFound), errors.Is(err, intake.ErrClosed):
		return huma.Error404NotFound("form not found")
	case errors.Is(err, intake.ErrAttachmentIndex):
		return huma.Error404NotFound("attachment not found")
	case errors.Is(err, formsvc.ErrInvalidKind), errors.Is(err, intake.ErrUnknownField):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, intake.ErrAttachmentsUnsupported):
		return huma.Error422UnprocessableEntity("contact forms do not accept attachments")
	case errors.Is(err, intake.ErrSubmitting):
		return huma.Error409Conflict("form is submitting")
	case errors.Is(err, formsvc.ErrCapacity):
		return huma.Error503ServiceUnavailable("too many open forms")
	default:
		return huma.Error500InternalServerError("internal server error")
	}
}

func readAttachments(headers []*multipart.FileHeader) ([]intake.Attachment, error) {
	files := make([]intake.Attachment, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
		}
		files = append(files, intake.Attachment{
			Filename:    fh.Filename,
			ContentType: contentType(fh, data),
			Data:        data,
		})
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// contentType trusts the sniffed type over the declared one unless sniffing is inconclusive.
func contentType(fh *multipart.FileHeader, data []byte) string {
	detected := mimetype.Detect(data)
	if !detected.Is("application/octet-stream") {
		return detected.String()
	}
	if declared := fh.Header.Get("Content-Type"); declared != "" {
		return declared
	}
	return detected.String()
}

func toHTTPForm(id string, kind intake.Kind, s intake.State) Form {
	attachments := make([]Attachment, len(s.Input.Attachments))
	for i, a := range s.Input.Attachments {
		attachments[i] = Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        len(a.Data),
		}
	}
	return Form{
		ID:      id,
		Kind:    string(kind),
		Phase:   string(s.Phase),
		Error:   s.Error,
		Message: s.Message,
		Fields: Fields{
			Name:        s.Input.Name,
			Email:       s.Input.Email,
			Phone:       s.Input.Phone,
			Service:     s.Input.Service,
			Message:     s.Input.Message,
			Attachments: attachments,
		},
	}
}
