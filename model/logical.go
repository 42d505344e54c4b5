package model

// LogicalType refines a primitive or fixed physical type.
type LogicalType int

const (
	LogicalNone LogicalType = iota
	LogicalDecimal
	LogicalUUID
	LogicalDate
	LogicalTimeMillis
	LogicalTimeMicros
	LogicalTimestampMillis
	LogicalTimestampMicros
	LogicalLocalTimestampMillis
	LogicalLocalTimestampMicros
	LogicalDuration
)

type logicalInfo struct {
	name    string
	parents []Type
}

var logicalTypes = [...]logicalInfo{
	LogicalNone:                 {},
	LogicalDecimal:              {"decimal", []Type{TypeBytes, TypeFixed}},
	LogicalUUID:                 {"uuid", []Type{TypeString}},
	LogicalDate:                 {"date", []Type{TypeInt}},
	LogicalTimeMillis:           {"time-millis", []Type{TypeInt}},
	LogicalTimeMicros:           {"time-micros", []Type{TypeLong}},
	LogicalTimestampMillis:      {"timestamp-millis", []Type{TypeLong}},
	LogicalTimestampMicros:      {"timestamp-micros", []Type{TypeLong}},
	LogicalLocalTimestampMillis: {"local-timestamp-millis", []Type{TypeLong}},
	LogicalLocalTimestampMicros: {"local-timestamp-micros", []Type{TypeLong}},
	LogicalDuration:             {"duration", []Type{TypeFixed}},
}

// LogicalTypeFromName looks up a logicalType property value.
func LogicalTypeFromName(name string) (LogicalType, bool) {
	for i, info := range logicalTypes {
		if info.name != "" && info.name == name {
			return LogicalType(i), true
		}
	}
	return LogicalNone, false
}

func (l LogicalType) String() string {
	if l > LogicalNone && int(l) < len(logicalTypes) {
		return logicalTypes[l].name
	}
	return ""
}

// ParentTypes lists the physical types l may decorate.
func (l LogicalType) ParentTypes() []Type {
	if l > LogicalNone && int(l) < len(logicalTypes) {
		return logicalTypes[l].parents
	}
	return nil
}

// Decorates reports whether l may be applied to t.
func (l LogicalType) Decorates(t Type) bool {
	for _, p := range l.ParentTypes() {
		if p == t {
			return true
		}
	}
	return false
}

// StringRepresentation is the "avro.java.string" hint on string schemas.
type StringRepresentation int

const (
	StringRepNone StringRepresentation = iota
	StringRepString
	StringRepUtf8
	StringRepCharSequence
)

var stringReps = [...]string{"", "String", "Utf8", "CharSequence"}

// StringRepresentationFromName parses a representation value.
func StringRepresentationFromName(s string) (StringRepresentation, bool) {
	for i, name := range stringReps {
		if name != "" && name == s {
			return StringRepresentation(i), true
		}
	}
	return StringRepNone, false
}

func (r StringRepresentation) String() string {
	if r >= 0 && int(r) < len(stringReps) {
		return stringReps[r]
	}
	return ""
}
