// Package draft loads article drafts from CUE or YAML files.
//
// A draft is checked against an embedded CUE schema before it reaches the
// article form. YAML drafts are decoded with yaml.v3 and then checked
// against the same schema, so both formats accept exactly the same fields:
//
//	title:    "Hello"
//	excerpt:  "One line"
//	content:  """
//	    Body text.
//	    """
//	status:   "draft"
//	category: "tech"
//	tags:     ["go", "cloud"]
//	cover:    "cover.png"
package draft
