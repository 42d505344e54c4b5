package avsc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/reoring/avsc/internal/engine"
	"github.com/reoring/avsc/jsonloc"
	"github.com/reoring/avsc/model"
	srcjson "github.com/reoring/avsc/source/json"
	srcyaml "github.com/reoring/avsc/source/yaml"
)

// Parser turns schema source documents into resolved ASTs. It keeps no
// per-document state, so one Parser may serve concurrent calls.
type Parser struct {
	opt    ParseOpt
	logger *slog.Logger
}

// NewParser returns a Parser configured with DefaultParseOpt and opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{opt: DefaultParseOpt()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Options returns the effective parse options.
func (p *Parser) Options() ParseOpt { return p.opt }

// ParseString parses schema source held in memory. Locations carry no URI.
func (p *Parser) ParseString(text string) *Result {
	return p.ParseBytes("", []byte(text))
}

// ParseBytes parses JSON schema source identified by uri.
func (p *Parser) ParseBytes(uri string, data []byte) *Result {
	return p.run(uri, func(sink func(engine.SimpleIssue)) (*jsonloc.Node, error) {
		var src engine.TokenSource = srcjson.NewBytes(data)
		eo := engine.EnforceOptions{
			OnDuplicate: p.opt.Strictness.OnDuplicateKey.duplicateStrictness(),
			MaxDepth:    p.opt.MaxDepth,
			MaxBytes:    p.opt.MaxBytes,
			IssueSink:   sink,
		}
		if engine.NeedsEnforcement(eo) {
			src = engine.WrapWithEnforcement(src, eo)
		}
		return engine.BuildTree(src, engine.BuildOptions{
			KeepFirstDuplicate: p.opt.Strictness.OnDuplicateKey == Warn,
		})
	})
}

// ParseReader buffers r completely and parses it as JSON schema source.
func (p *Parser) ParseReader(uri string, r io.Reader) *Result {
	if p.opt.MaxBytes > 0 {
		r = io.LimitReader(r, p.opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return p.ioFailure(uri, fmt.Errorf("read %s: %w", uri, err))
	}
	return p.ParseBytes(uri, data)
}

// ParseFile parses the JSON schema source at path. Issue locations use the
// file:// URI of the absolute path.
func (p *Parser) ParseFile(path string) *Result {
	uri := FileURI(path)
	f, err := os.Open(path)
	if err != nil {
		return p.ioFailure(uri, fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()
	return p.ParseReader(uri, f)
}

// ParseYAML parses schema source authored as YAML. Positions carry line and
// column only.
func (p *Parser) ParseYAML(uri string, data []byte) *Result {
	return p.run(uri, func(sink func(engine.SimpleIssue)) (*jsonloc.Node, error) {
		if p.opt.MaxBytes > 0 && int64(len(data)) > p.opt.MaxBytes {
			return nil, engine.IssueError{SimpleIssue: engine.SimpleIssue{
				Code:    engine.CodeLimitExceeded,
				Message: fmt.Sprintf("max bytes %d exceeded", p.opt.MaxBytes),
				Pos:     jsonloc.Position{Offset: p.opt.MaxBytes},
			}}
		}
		return srcyaml.Parse(data, srcyaml.Options{
			OnDuplicate: p.opt.Strictness.OnDuplicateKey.duplicateStrictness(),
			MaxDepth:    p.opt.MaxDepth,
			IssueSink:   sink,
		})
	})
}

// ParseYAMLFile parses the YAML schema source at path.
func (p *Parser) ParseYAMLFile(path string) *Result {
	uri := FileURI(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return p.ioFailure(uri, fmt.Errorf("read %s: %w", path, err))
	}
	return p.ParseYAML(uri, data)
}

// FileURI returns the file:// URI for path, made absolute when possible.
func FileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func (s Severity) duplicateStrictness() engine.DuplicateStrictness {
	switch s {
	case Warn:
		return engine.DupWarn
	case Error:
		return engine.DupError
	}
	return engine.DupIgnore
}

type treeReader func(sink func(engine.SimpleIssue)) (*jsonloc.Node, error)

// run is the pipeline shared by every entry point: build the tree, parse
// the outermost declaration, resolve references, package the result.
func (p *Parser) run(uri string, read treeReader) *Result {
	logger := componentLogger(p.logger, "parser")
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "parse start", slog.String("uri", uri))
	}

	var pre Issues
	root, err := read(func(si engine.SimpleIssue) {
		pre = append(pre, newIssue(si.Code, model.CodeLocation{URI: uri, Start: si.Pos, End: si.Pos}, map[string]any{"path": si.Path}))
	})
	if err != nil {
		return p.fail(logger, &Result{URI: uri}, sourceIssue(uri, err))
	}

	ctx := newParseContext(uri, logger)
	ctx.issues = pre
	slot, err := parseDecl(ctx, root, true)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			return p.fail(logger, &Result{URI: uri}, se.Issue())
		}
		return p.fail(logger, &Result{URI: uri}, Issue{Code: CodeBadSchemaNode, Message: err.Error(), Location: model.CodeLocation{URI: uri}, Cause: err})
	}
	ctx.resolveReferences()
	if p.opt.DecodeDeferredDefaults {
		ctx.decodeDeferredDefaults()
	}

	res := &Result{URI: uri, Schema: slot, Issues: append(Issues(nil), ctx.issues...), ctx: ctx}
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "parse complete",
			slog.String("uri", uri),
			slog.Int("named", len(ctx.named)),
			slog.Int("issues", len(res.Issues)))
	}
	return res
}

func (p *Parser) fail(logger *slog.Logger, res *Result, is Issue) *Result {
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "parse aborted",
			slog.String("uri", res.URI),
			slog.String("code", is.Code),
			slog.String("at", is.Location.String()))
	}
	res.Issues = Issues{is}
	return res
}

func (p *Parser) ioFailure(uri string, err error) *Result {
	is := newIssue(CodeIOError, model.CodeLocation{URI: uri}, map[string]any{"detail": err.Error()})
	is.Cause = err
	return p.fail(componentLogger(p.logger, "source"), &Result{URI: uri}, is)
}

// sourceIssue converts a tree-building failure into its diagnostic.
func sourceIssue(uri string, err error) Issue {
	at := func(pos jsonloc.Position) model.CodeLocation {
		return model.CodeLocation{URI: uri, Start: pos, End: pos}
	}
	var (
		jse *srcjson.SyntaxError
		yse *srcyaml.SyntaxError
		ie  engine.IssueError
		is  Issue
	)
	switch {
	case errors.As(err, &ie):
		is = newIssue(ie.Code, at(ie.Pos), map[string]any{"path": ie.Path, "detail": ie.Message})
	case errors.As(err, &jse):
		detail := jse.Msg
		if jse.Comment {
			detail = "comments are not supported in JSON"
		}
		is = newIssue(CodeJSONParseError, at(jse.Pos), map[string]any{"detail": detail})
	case errors.As(err, &yse):
		is = newIssue(CodeYAMLParseError, at(yse.Pos), map[string]any{"detail": yse.Msg})
	case errors.Is(err, srcyaml.ErrEmptyDocument):
		is = newIssue(CodeYAMLParseError, model.CodeLocation{URI: uri}, map[string]any{"detail": err.Error()})
	default:
		is = newIssue(CodeJSONParseError, model.CodeLocation{URI: uri}, map[string]any{"detail": err.Error()})
	}
	is.Cause = err
	return is
}

var defaultParser = NewParser()

// ParseString parses in-memory schema source with the default options.
func ParseString(text string) *Result { return defaultParser.ParseString(text) }

// ParseFile parses a schema file with the default options.
func ParseFile(path string) *Result { return defaultParser.ParseFile(path) }
