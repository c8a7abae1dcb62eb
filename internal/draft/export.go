package draft

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// yamlDraft fixes the field order of exported drafts.
type yamlDraft struct {
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Status   string   `yaml:"status"`
	Category string   `yaml:"category,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Content  string   `yaml:"content"`
}

// Export renders form fields as a YAML draft that Load accepts, so an
// existing article can be edited offline and submitted again.
func Export(f viewmodel.ArticleFields) ([]byte, error) {
	d := yamlDraft{
		Title:    f.Title,
		Excerpt:  f.Excerpt,
		Status:   string(f.Status),
		Category: f.Category,
		Tags:     f.Tags,
		Content:  f.Content,
	}
	if d.Status == "" {
		d.Status = "draft"
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return buf.Bytes(), nil
}
