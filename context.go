package avsc

import (
	"context"
	"log/slog"

	"github.com/reoring/avsc/jsonloc"
	"github.com/reoring/avsc/model"
)

// parseContext is the mutable state of one parse call. It is created fresh
// per document and never shared.
type parseContext struct {
	uri    string
	logger *slog.Logger

	namespaces []string
	symbols    map[string]model.NamedSchema
	named      []model.NamedSchema
	topLevel   model.Schema

	// pending holds every reference slot created during the declaration
	// pass, in creation order.
	pending []*model.SchemaOrRef
	// deferred holds fields whose default is still an UnparsedLiteral.
	deferred []*model.Field

	issues Issues
}

func newParseContext(uri string, logger *slog.Logger) *parseContext {
	return &parseContext{
		uri:     uri,
		logger:  logger,
		symbols: map[string]model.NamedSchema{},
	}
}

func (c *parseContext) loc(n *jsonloc.Node) model.CodeLocation {
	return model.LocationOf(c.uri, n)
}

func (c *parseContext) addIssue(is Issue) {
	c.issues = append(c.issues, is)
}

func (c *parseContext) issue(code string, n *jsonloc.Node, params map[string]any) {
	c.addIssue(newIssue(code, c.loc(n), params))
}

func (c *parseContext) fatal(code string, n *jsonloc.Node, params map[string]any) *SyntaxError {
	return newSyntaxError(code, c.loc(n), params)
}

// currentNamespace returns the innermost namespace, or "" at the top.
func (c *parseContext) currentNamespace() string {
	if len(c.namespaces) == 0 {
		return ""
	}
	return c.namespaces[len(c.namespaces)-1]
}

// pushNamespace enters ns and returns the matching pop. Entering the
// namespace that is already current is a no-op.
func (c *parseContext) pushNamespace(ns string) (pop func()) {
	if ns == c.currentNamespace() {
		return func() {}
	}
	c.namespaces = append(c.namespaces, ns)
	depth := len(c.namespaces)
	return func() { c.namespaces = c.namespaces[:depth-1] }
}

// reference creates an unresolved slot for name and queues it.
func (c *parseContext) reference(n *jsonloc.Node, name string) *model.SchemaOrRef {
	ref := model.Reference(c.loc(n), name, c.currentNamespace())
	c.pending = append(c.pending, ref)
	return ref
}

// defineSchema registers a named schema under its full name and, for the
// outermost declaration, records the document's schema.
func (c *parseContext) defineSchema(s model.Schema, n *jsonloc.Node, isTopLevel bool) error {
	if ns, ok := s.(model.NamedSchema); ok {
		full := ns.Name().FullName()
		if prev, dup := c.symbols[full]; dup {
			return c.fatal(CodeDuplicateDefinition, n, map[string]any{
				"name":     full,
				"previous": prev.Location().String(),
			})
		}
		c.symbols[full] = ns
		c.named = append(c.named, ns)
		if logEnabled(c.logger, LevelTrace) {
			c.logger.LogAttrs(context.Background(), LevelTrace, "schema defined",
				slog.String("name", full),
				slog.String("type", s.Type().String()))
		}
	}
	if isTopLevel {
		if c.topLevel != nil {
			return c.fatal(CodeDuplicateTopLevel, n, nil)
		}
		c.topLevel = s
	}
	return nil
}

// lookup finds a defined named schema by full name.
func (c *parseContext) lookup(full string) (model.NamedSchema, bool) {
	s, ok := c.symbols[full]
	return s, ok
}

// resolveReferences fills every pending reference from the symbol table.
// The table is closed at this point: one pass, no retries.
func (c *parseContext) resolveReferences() {
	logger := componentLogger(c.logger, "resolver")
	unresolved := 0
	for _, ref := range c.pending {
		if ref.IsResolved() {
			continue
		}
		full := ref.FullRefName()
		s, ok := c.lookup(full)
		if !ok {
			unresolved++
			c.addIssue(newIssue(CodeUnresolvedReference, ref.Location(), map[string]any{"name": full}))
			if logEnabled(logger, slog.LevelDebug) {
				logger.LogAttrs(context.Background(), slog.LevelDebug, "unresolved reference",
					slog.String("name", full),
					slog.String("at", ref.Location().String()))
			}
			continue
		}
		// Slots are only ever created unresolved, so this cannot fail.
		_ = ref.Resolve(s)
		if logEnabled(logger, LevelTrace) {
			logger.LogAttrs(context.Background(), LevelTrace, "reference resolved", slog.String("name", full))
		}
	}
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "references resolved",
			slog.Int("total", len(c.pending)),
			slog.Int("unresolved", unresolved))
	}
}

// decodeDeferredDefaults decodes the unparsed defaults whose schema became
// fully defined after resolution. Failed defaults are dropped. It returns
// the issues it recorded.
func (c *parseContext) decodeDeferredDefaults() Issues {
	before := len(c.issues)
	remaining := c.deferred[:0]
	for _, f := range c.deferred {
		raw, ok := f.Default().(*model.UnparsedLiteral)
		if !ok {
			continue
		}
		s := f.Schema().Schema()
		if s == nil || !model.IsFullyDefined(s) {
			remaining = append(remaining, f)
			continue
		}
		lit, is := c.decodeDefault(raw.Node(), s, f.Name())
		if is != nil {
			c.addIssue(*is)
			f.SetDefault(nil)
			continue
		}
		f.SetDefault(lit)
	}
	c.deferred = remaining
	return append(Issues(nil), c.issues[before:]...)
}
