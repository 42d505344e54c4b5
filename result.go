package avsc

import "github.com/reoring/avsc/model"

// Result is the outcome of one parse call. A nil Schema means the parse was
// aborted and Issues holds the single fatal diagnostic; otherwise Issues
// lists the caveats of a usable schema.
type Result struct {
	URI    string
	Schema *model.SchemaOrRef
	Issues Issues

	ctx *parseContext
}

// OK reports whether a schema was produced.
func (r *Result) OK() bool { return r.Schema != nil }

// Err returns the issues as an error, or nil when there are none.
func (r *Result) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	return r.Issues
}

// TopLevel returns the resolved document schema, or nil.
func (r *Result) TopLevel() model.Schema {
	if r.Schema == nil {
		return nil
	}
	return r.Schema.Schema()
}

// Named lists every named schema the document defined, in definition order.
func (r *Result) Named() []model.NamedSchema {
	if r.ctx == nil {
		return nil
	}
	return r.ctx.named
}

// Lookup finds a named schema defined by the document.
func (r *Result) Lookup(fullName string) (model.NamedSchema, bool) {
	if r.ctx == nil {
		return nil, false
	}
	return r.ctx.lookup(fullName)
}

// UnparsedDefaults lists fields whose default is still undecoded.
func (r *Result) UnparsedDefaults() []*model.Field {
	if r.ctx == nil {
		return nil
	}
	var out []*model.Field
	for _, f := range r.ctx.deferred {
		if f.HasUnparsedDefault() {
			out = append(out, f)
		}
	}
	return out
}

// DecodeDeferredDefaults runs the second literal pass over defaults that
// could not be decoded during the declaration pass. New issues are appended
// to r.Issues and also returned. Calling it again only revisits defaults
// that are still unparsed.
func (r *Result) DecodeDeferredDefaults() Issues {
	if r.ctx == nil {
		return nil
	}
	added := r.ctx.decodeDeferredDefaults()
	r.Issues = append(r.Issues, added...)
	return added
}
