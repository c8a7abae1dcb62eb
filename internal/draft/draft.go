package draft

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

//go:embed schema.cue
var schemaSource string

// Draft is a decoded, schema-checked draft file.
type Draft struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Status   string `json:"status"`
	Category any    `json:"category,omitempty"`
	Tags     []any  `json:"tags"`
	Cover    string `json:"cover,omitempty"`

	// Dir is the directory of the source file.
	Dir string `json:"-"`
}

// LoadError is a draft that failed to parse or violates the schema.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads a .cue, .yaml or .yml draft.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read draft: " + err.Error()}
	}
	return Parse(path, data)
}

// Parse decodes draft source; path selects the format by extension and is
// used in error messages.
func Parse(path string, data []byte) (*Draft, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile draft schema: %w", err)
	}

	var v cue.Value
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, &LoadError{Path: path, Message: err.Error()}
		}
		if m == nil {
			return nil, &LoadError{Path: path, Message: "draft is empty"}
		}
		v = ctx.Encode(m)
	default:
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("unsupported draft format %q (use .cue or .yaml)", ext)}
	}
	if err := v.Err(); err != nil {
		return nil, cueError(path, err)
	}

	v = schema.LookupPath(cue.ParsePath("#Draft")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(path, err)
	}

	d := &Draft{}
	if err := v.Decode(d); err != nil {
		return nil, cueError(path, err)
	}
	d.Dir = filepath.Dir(path)
	return d, nil
}

// cueError reports the first CUE error. Its position is kept only when it
// points into the draft itself, not the embedded schema.
func cueError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: path, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Path: path, Message: first.Error()}
	for _, pos := range errors.Positions(first) {
		if pos.Filename() == path {
			le.Pos = pos
			break
		}
	}
	return le
}

// Fields converts the draft to article form fields, reading the cover image
// when one is named.
func (d *Draft) Fields() (viewmodel.ArticleFields, error) {
	f := viewmodel.ArticleFields{
		Title:   d.Title,
		Excerpt: d.Excerpt,
		Content: d.Content,
		Status:  model.ArticleStatus(d.Status),
	}
	if d.Category != nil {
		f.Category = fmt.Sprint(d.Category)
	}
	for _, t := range d.Tags {
		f.Tags = append(f.Tags, fmt.Sprint(t))
	}
	if d.Cover != "" {
		path := d.Cover
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.Dir, path)
		}
		cover, err := ReadFile(path)
		if err != nil {
			return viewmodel.ArticleFields{}, err
		}
		f.Cover = cover
	}
	return f, nil
}

// ReadFile loads a file for upload.
func ReadFile(path string) (*model.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &model.File{Name: filepath.Base(path), Data: data}, nil
}
