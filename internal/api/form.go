package api

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/Dooralove/PulseNews/internal/model"
)

// Form is a multipart/form-data body. Fields keep insertion order and may
// repeat, which is how the API receives list values such as tags.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct{ name, value string }

type formFile struct {
	name string
	file model.File
}

// NewForm returns an empty form.
func NewForm() *Form { return &Form{} }

// Add appends a field value.
func (f *Form) Add(name, value string) *Form {
	f.fields = append(f.fields, formField{name, value})
	return f
}

// AddFile appends a file part.
func (f *Form) AddFile(name string, file model.File) *Form {
	f.files = append(f.files, formFile{name, file})
	return f
}

// Values returns all values recorded for name.
func (f *Form) Values(name string) []string {
	var out []string
	for _, fld := range f.fields {
		if fld.name == name {
			out = append(out, fld.value)
		}
	}
	return out
}

// Len is the number of parts.
func (f *Form) Len() int { return len(f.fields) + len(f.files) }

// encode writes the form and returns the body with its content type.
func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}
	for _, ff := range f.files {
		part, err := w.CreateFormFile(ff.name, ff.file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", ff.name, err)
		}
		if _, err := part.Write(ff.file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", ff.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
