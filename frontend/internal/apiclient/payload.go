package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/aribt/hackathon-cms/shared/domain"
	"github.com/aribt/hackathon-cms/shared/validation"
)

// Payloads come in three shapes:
//   - *Form is sent as multipart/form-data as is;
//   - a FormEncoder is validated, then rendered to a *Form;
//   - anything else is validated (when it is a struct) and sent as JSON.

// FormEncoder is implemented by inputs that carry files.
type FormEncoder interface {
	Form() (*Form, error)
}

// Form is a multipart body under construction. Fields keep insertion order.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field  string
	upload domain.Upload
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name, value})
	return f
}

// SetJSON adds a field holding v encoded as JSON.
func (f *Form) SetJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode form field %s: %w", name, err)
	}
	f.Set(name, string(data))
	return nil
}

// Attach adds a file part. Empty uploads are skipped so that an edit
// without a new file keeps the stored one.
func (f *Form) Attach(field string, u *domain.Upload) *Form {
	if u.Empty() {
		return f
	}
	f.files = append(f.files, formFile{field: field, upload: *u})
	return f
}

func (f *Form) Value(name string) (string, bool) {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.value, true
		}
	}
	return "", false
}

func (f *Form) HasFile(field string) bool {
	for _, fl := range f.files {
		if fl.field == field {
			return true
		}
	}
	return false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", fl.name, err)
		}
	}
	for _, fl := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(fl.field), quoteEscaper.Replace(fl.upload.Filename)))
		contentType := fl.upload.MimeType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part %s: %w", fl.field, err)
		}
		if _, err := part.Write(fl.upload.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write file part %s: %w", fl.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// encodePayload returns the body and its content type ("" means JSON).
func encodePayload(payload any) (io.Reader, string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		return p.encode()
	case FormEncoder:
		if err := validation.Struct(p); err != nil {
			return nil, "", err
		}
		form, err := p.Form()
		if err != nil {
			return nil, "", err
		}
		return form.encode()
	default:
		if err := validation.Struct(p); err != nil {
			return nil, "", err
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
		}
		return bytes.NewReader(data), "", nil
	}
}
