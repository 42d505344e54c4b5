package engine

import (
	"strconv"
	"strings"

	"github.com/reoring/avsc/jsonloc"
)

// DuplicateStrictness selects what happens when an object repeats a key.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Codes carried by SimpleIssue.
const (
	CodeDuplicateKey  = "duplicate-key"
	CodeLimitExceeded = "limit-exceeded"
)

// SimpleIssue is a source-level finding: a code, the JSON pointer of the
// offending member and where its token starts.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Pos     jsonloc.Position
}

// IssueError aborts token reading with a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions configures WrapWithEnforcement. Zero values disable a check.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives duplicate keys in DupWarn mode.
	IssueSink func(SimpleIssue)
}

// NeedsEnforcement reports whether opt asks for any checks at all.
func NeedsEnforcement(opt EnforceOptions) bool {
	return opt.OnDuplicate != DupIgnore || opt.MaxDepth > 0 || opt.MaxBytes > 0
}

// WrapWithEnforcement checks duplicate keys, nesting depth and consumed
// bytes while tokens stream through, before any tree is built.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &limiter{src: inner, opt: opt}
}

// scope tracks one open container. key is non-empty only between a member
// key and the end of its value.
type scope struct {
	pointer string
	array   bool
	index   int
	seen    map[string]struct{}
	key     string
	inValue bool
}

type limiter struct {
	src    TokenSource
	opt    EnforceOptions
	scopes []*scope
}

func (l *limiter) Location() int64 { return l.src.Location() }

func (l *limiter) NextToken() (Token, error) {
	tok, err := l.src.NextToken()
	if err != nil {
		return Token{}, err
	}
	ptr := l.pointerOf(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		l.scopes = append(l.scopes, &scope{pointer: ptr, array: tok.Kind == KindBeginArray})
		if l.opt.MaxDepth > 0 && len(l.scopes) > l.opt.MaxDepth {
			return Token{}, limitError(ptr, tok.Start, "max depth "+strconv.Itoa(l.opt.MaxDepth)+" exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(l.scopes); n > 0 {
			l.scopes = l.scopes[:n-1]
		}
		l.closeValue()
	case KindKey:
		if err := l.enterMember(tok, ptr); err != nil {
			return Token{}, err
		}
	default:
		l.closeValue()
	}

	if l.opt.MaxBytes > 0 {
		if off := l.src.Location(); off > l.opt.MaxBytes {
			return Token{}, limitError(ptr, tok.Start, "max bytes "+strconv.FormatInt(l.opt.MaxBytes, 10)+" exceeded")
		}
	}
	return tok, nil
}

func (l *limiter) enterMember(tok Token, ptr string) error {
	s := l.top()
	if s == nil || s.array || s.inValue {
		return nil
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, dup := s.seen[tok.String]; dup && l.opt.OnDuplicate != DupIgnore {
		issue := SimpleIssue{Code: CodeDuplicateKey, Path: ptr, Message: "key '" + tok.String + "' duplicated", Pos: tok.Start}
		if l.opt.OnDuplicate == DupError {
			return IssueError{issue}
		}
		if l.opt.IssueSink != nil {
			l.opt.IssueSink(issue)
		}
	}
	s.seen[tok.String] = struct{}{}
	s.key, s.inValue = tok.String, true
	return nil
}

// closeValue marks the current member value of the enclosing object as complete.
func (l *limiter) closeValue() {
	if s := l.top(); s != nil && !s.array {
		s.key, s.inValue = "", false
	}
}

func (l *limiter) top() *scope {
	if len(l.scopes) == 0 {
		return nil
	}
	return l.scopes[len(l.scopes)-1]
}

// pointerOf returns the JSON pointer of the value or key tok belongs to.
// The document root is reported as "/".
func (l *limiter) pointerOf(tok Token) string {
	s := l.top()
	if s == nil {
		return "/"
	}
	switch tok.Kind {
	case KindEndObject, KindEndArray:
		return rootSlash(s.pointer)
	case KindKey:
		return childPointer(s.pointer, tok.String)
	}
	if s.array {
		s.index++
		return childPointer(s.pointer, strconv.Itoa(s.index-1))
	}
	if s.inValue {
		return childPointer(s.pointer, s.key)
	}
	return rootSlash(s.pointer)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func childPointer(parent, token string) string {
	return strings.TrimSuffix(parent, "/") + "/" + pointerEscaper.Replace(token)
}

func rootSlash(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func limitError(ptr string, pos jsonloc.Position, msg string) IssueError {
	return IssueError{SimpleIssue{Code: CodeLimitExceeded, Path: ptr, Message: msg, Pos: pos}}
}
