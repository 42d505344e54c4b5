package avsc

// Severity expresses how an optional check reacts.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate JSON keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore (last wins), Warn (first wins, issue) or Error (fatal).
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 disables the nesting limit.
	MaxBytes   int64 // 0 disables the size limit.
	// DecodeDeferredDefaults runs the second literal pass over defaults whose
	// schema was only known after reference resolution.
	DecodeDeferredDefaults bool
}

// DefaultParseOpt returns the options used by NewParser.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{Strictness: Strictness{OnDuplicateKey: Warn}}
}

// StrictParseOpt rejects duplicate keys and bounds nesting and size.
func StrictParseOpt() ParseOpt {
	return ParseOpt{
		Strictness:             Strictness{OnDuplicateKey: Error},
		MaxDepth:               256,
		MaxBytes:               16 << 20,
		DecodeDeferredDefaults: true,
	}
}
