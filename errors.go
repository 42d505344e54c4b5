package avsc

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/avsc/i18n"
	"github.com/reoring/avsc/internal/engine"
	"github.com/reoring/avsc/model"
)

// Issue codes. Fatal conditions surface as a *SyntaxError carrying one of
// the structural codes; everything else is recorded and parsing continues.
const (
	// Input acquisition and JSON text.
	CodeIOError        = "io-error"
	CodeJSONParseError = "json-parse-error"
	CodeYAMLParseError = "yaml-parse-error"
	CodeDuplicateKey   = engine.CodeDuplicateKey
	CodeLimitExceeded  = engine.CodeLimitExceeded

	// Structural (fatal).
	CodeMissingProperty     = "missing-property"
	CodeBadJSONKind         = "bad-json-kind"
	CodeUnknownType         = "unknown-type"
	CodeIllegalTypeName     = "illegal-type-name"
	CodeBadSchemaNode       = "bad-schema-node"
	CodeNestedUnion         = "nested-union"
	CodeDuplicateDefinition = "duplicate-definition"
	CodeDuplicateTopLevel   = "duplicate-top-level"
	CodeBadFixedSize        = "bad-fixed-size"

	// Names.
	CodeUseOfFullName       = "use-of-full-name"
	CodeIgnoredNamespace    = "ignored-namespace"
	CodeDuplicateAlias      = "duplicate-alias"
	CodeUnresolvedReference = "unresolved-reference"

	// Declarations.
	CodeDuplicateField  = "duplicate-field"
	CodeDuplicateSymbol = "duplicate-symbol"
	CodeBadEnumDefault  = "bad-enum-default"
	CodeBadFieldOrder   = "bad-field-order"
	CodeBadPropertyType = "bad-property-type"

	// Decorations.
	CodeUnknownLogicalType              = "unknown-logical-type"
	CodeMismatchedLogicalType           = "mismatched-logical-type"
	CodePrecisionRequired               = "precision-required"
	CodePrecisionSmallerThanScale       = "precision-smaller-than-scale"
	CodePrecisionTooLarge               = "precision-too-large"
	CodeUnknownStringRepresentation     = "unknown-string-representation"
	CodeStringRepresentationOnNonString = "string-representation-on-non-string"

	// Literals.
	CodeBadLiteral            = "bad-literal"
	CodeLiteralOutOfRange     = "literal-out-of-range"
	CodeLiteralLengthMismatch = "literal-length-mismatch"
	CodeUnknownEnumSymbol     = "unknown-enum-symbol"
	CodeMissingFieldValue     = "missing-field-value"
	CodeNoUnionBranch         = "no-union-branch"
	CodeBadUUIDLiteral        = "bad-uuid-literal"
	CodeBadDefault            = "bad-default"
)

// Issue is one diagnostic. Issues carry no severity: anything fatal aborts
// the parse and becomes the single issue of its Result.
type Issue struct {
	Code     string
	Message  string
	Location model.CodeLocation
	// Params carries the values substituted into Message, for i18n and
	// machine consumers.
	Params map[string]any
	Cause  error
}

// String renders "uri:line:col: [code] message".
func (is Issue) String() string {
	return fmt.Sprintf("%s: [%s] %s", is.Location, is.Code, is.Message)
}

func newIssue(code string, loc model.CodeLocation, params map[string]any) Issue {
	return Issue{Code: code, Message: renderMessage(code, params), Location: loc, Params: params}
}

func renderMessage(code string, params map[string]any) string {
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	msg := i18n.T(code, data)
	if d, ok := data["detail"]; ok && !strings.Contains(msg, d) {
		msg += ": " + d
	}
	return msg
}

// Issues is an ordered collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Location)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Codes lists the distinct codes present, sorted.
func (iss Issues) Codes() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range iss {
		if _, ok := seen[it.Code]; !ok {
			seen[it.Code] = struct{}{}
			out = append(out, it.Code)
		}
	}
	sort.Strings(out)
	return out
}

// WithCode returns the issues carrying code, in arrival order.
func (iss Issues) WithCode(code string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Code == code {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SyntaxError aborts a parse. It is never returned from the public entry
// points; they fold it into a single Issue.
type SyntaxError struct {
	Code     string
	Message  string
	Location model.CodeLocation
	Params   map[string]any
	Cause    error
}

func newSyntaxError(code string, loc model.CodeLocation, params map[string]any) *SyntaxError {
	return &SyntaxError{Code: code, Message: renderMessage(code, params), Location: loc, Params: params}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// Issue converts the error into its diagnostic.
func (e *SyntaxError) Issue() Issue {
	return Issue{Code: e.Code, Message: e.Message, Location: e.Location, Params: e.Params, Cause: e.Cause}
}
