package viewmodel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
)

const msgRequired = "This field is required."

// ArticleFields is what the author fills in. Category and Tags name
// existing records by id, slug or name.
type ArticleFields struct {
	Title    string              `form:"title" validate:"required,max=200"`
	Excerpt  string              `form:"excerpt" validate:"required,max=500"`
	Content  string              `form:"content" validate:"required"`
	Status   model.ArticleStatus `form:"status" validate:"oneof=draft published archived"`
	Category string              `form:"category"`
	Tags     []string            `form:"tags"`
	Cover    *model.File         `form:"-"`
}

// normalized NFC-normalizes and trims the text fields and defaults the
// status to draft.
func (f ArticleFields) normalized() ArticleFields {
	f.Title = model.NormalizeText(f.Title)
	f.Excerpt = model.NormalizeText(f.Excerpt)
	f.Content = model.NormalizeText(f.Content)
	f.Category = strings.TrimSpace(f.Category)
	if f.Status == "" {
		f.Status = model.StatusDraft
	}
	return f
}

// ArticleForm creates a new article, or edits one when EditID is set.
type ArticleForm struct {
	svc    *service.Services
	viewer Viewer

	EditID     int64
	Original   *model.Article
	Categories []model.Category
	Tags       []model.Tag
}

// NewArticleForm creates the form view model. editID 0 means create.
func NewArticleForm(svc *service.Services, viewer Viewer, editID int64) *ArticleForm {
	return &ArticleForm{svc: svc, viewer: viewer, EditID: editID}
}

// Load fetches the category and tag choices and, in edit mode, the article
// being edited, which the viewer must have authored.
func (f *ArticleForm) Load(ctx context.Context) error {
	if err := requireLogin(f.viewer); err != nil {
		return err
	}
	if !f.viewer.CanManageArticles() {
		return ErrPermissionDenied
	}

	cats, err := f.svc.Articles.Categories(ctx)
	if err != nil {
		return err
	}
	tags, err := f.svc.Articles.Tags(ctx)
	if err != nil {
		return err
	}
	f.Categories, f.Tags = cats, tags

	if f.EditID == 0 {
		return nil
	}
	a, err := f.svc.Articles.Get(ctx, f.EditID)
	if err != nil {
		return err
	}
	if !a.IsAuthoredBy(f.viewer.User()) {
		return ErrPermissionDenied
	}
	f.Original = &a
	return nil
}

// Fields returns the loaded article as form fields, for edit mode.
func (f *ArticleForm) Fields() ArticleFields {
	if f.Original == nil {
		return ArticleFields{Status: model.StatusDraft}
	}
	a := f.Original
	out := ArticleFields{
		Title:   a.Title,
		Excerpt: a.Excerpt,
		Content: a.Content,
		Status:  a.Status,
	}
	if a.Category != nil {
		out.Category = a.Category.Slug
	}
	for _, t := range a.Tags {
		out.Tags = append(out.Tags, t.Name)
	}
	return out
}

// Validate checks the fields and resolves category and tags. Load must
// have run so the choices are known.
func (f *ArticleForm) Validate(fields ArticleFields) (model.ArticleInput, error) {
	fields = fields.normalized()
	verr := checkForm(fields, nil)

	status := fields.Status
	in := model.ArticleInput{
		Title:      strPtr(fields.Title),
		Excerpt:    strPtr(fields.Excerpt),
		Content:    strPtr(fields.Content),
		Status:     &status,
		CoverImage: fields.Cover,
	}

	if c := fields.Category; c != "" {
		if id, ok := resolveCategory(f.Categories, c); ok {
			in.Category = &id
		} else {
			verr.Add("category", fmt.Sprintf("Unknown category %q.", c))
		}
	}
	for _, name := range fields.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := resolveTag(f.Tags, name); ok {
			in.Tags = append(in.Tags, id)
		} else {
			verr.Add("tags", fmt.Sprintf("Unknown tag %q.", name))
		}
	}

	if err := verr.Err(); err != nil {
		return model.ArticleInput{}, err
	}
	return in, nil
}

// Submit validates and saves. Server field errors come back as
// *ValidationError with the first message of each field.
func (f *ArticleForm) Submit(ctx context.Context, fields ArticleFields) (model.Article, error) {
	if err := requireLogin(f.viewer); err != nil {
		return model.Article{}, err
	}
	if !f.viewer.CanManageArticles() {
		return model.Article{}, ErrPermissionDenied
	}
	in, err := f.Validate(fields)
	if err != nil {
		return model.Article{}, err
	}

	var a model.Article
	if f.EditID == 0 {
		a, err = f.svc.Articles.Create(ctx, in)
	} else {
		a, err = f.svc.Articles.Update(ctx, f.EditID, in)
	}
	if err != nil {
		return model.Article{}, fromAPI(err)
	}
	return a, nil
}

func resolveCategory(cats []model.Category, ref string) (int64, bool) {
	id, isID := parseID(ref)
	for _, c := range cats {
		if (isID && c.ID == id) || strings.EqualFold(c.Slug, ref) || strings.EqualFold(c.Name, ref) {
			return c.ID, true
		}
	}
	return 0, false
}

func resolveTag(tags []model.Tag, ref string) (int64, bool) {
	id, isID := parseID(ref)
	for _, t := range tags {
		if (isID && t.ID == id) || strings.EqualFold(t.Slug, ref) || strings.EqualFold(t.Name, ref) {
			return t.ID, true
		}
	}
	return 0, false
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func strPtr(s string) *string { return &s }
