package avsc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/avsc"
	"github.com/reoring/avsc/model"
)

// parseDefault parses a one-field record whose field has the given type and
// default, and returns the field plus the issues of the parse.
func parseDefault(t *testing.T, typ, def string) (*model.Field, avsc.Issues) {
	t.Helper()
	src := `{"type":"record","name":"R","fields":[{"name":"f","type":` + typ + `,"default":` + def + `}]}`
	res := avsc.ParseString(src)
	require.True(t, res.OK(), "%s: %v", src, res.Issues)
	return res.TopLevel().(*model.RecordSchema).Field("f"), res.Issues
}

func TestDefaults_Accepted(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		def  string
		want any
	}{
		{"null", `"null"`, `null`, nil},
		{"boolean", `"boolean"`, `true`, true},
		{"int", `"int"`, `-2147483648`, int32(-2147483648)},
		{"long", `"long"`, `9223372036854775807`, int64(9223372036854775807)},
		{"float", `"float"`, `1.25`, float32(1.25)},
		{"float from integer", `"float"`, `3`, float32(3)},
		{"double", `"double"`, `-0.5e2`, -50.0},
		{"largest float", `"float"`, `3.4028234e38`, float32(3.4028234e38)},
		{"largest double", `"double"`, `-1.7976931348623157e308`, -1.7976931348623157e308},
		{"bytes", `"bytes"`, `"ÿ\u0000A"`, []byte{0xff, 0x00, 0x41}},
		{"string", `"string"`, `"héllo"`, "héllo"},
		{"uuid", `{"type":"string","logicalType":"uuid"}`, `"123e4567-e89b-12d3-a456-426614174000"`, "123e4567-e89b-12d3-a456-426614174000"},
		{"fixed", `{"type":"fixed","name":"F","size":3}`, `"abc"`, []byte("abc")},
		{"enum", `{"type":"enum","name":"E","symbols":["A","B"]}`, `"B"`, "B"},
		{"union first branch", `["null","int"]`, `null`, nil},
		{"union int first", `["int","null"]`, `4`, int32(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, iss := parseDefault(t, c.typ, c.def)
			require.Empty(t, iss)
			require.True(t, f.HasDefault())
			require.False(t, f.HasUnparsedDefault())
			assert.Equal(t, c.want, f.Default().Value())
		})
	}
}

func TestDefaults_Rejected(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		def  string
		code string
	}{
		{"int overflow", `"int"`, `2147483648`, avsc.CodeLiteralOutOfRange},
		{"long overflow", `"long"`, `9223372036854775808`, avsc.CodeLiteralOutOfRange},
		{"int with fraction", `"int"`, `1.5`, avsc.CodeBadLiteral},
		{"int with exponent", `"int"`, `1e2`, avsc.CodeBadLiteral},
		{"float overflow", `"float"`, `1e39`, avsc.CodeLiteralOutOfRange},
		{"double overflow", `"double"`, `1e309`, avsc.CodeLiteralOutOfRange},
		{"float just above max", `"float"`, `3.4028235e38`, avsc.CodeLiteralOutOfRange},
		{"negative float just above max", `"float"`, `-3.4028235e38`, avsc.CodeLiteralOutOfRange},
		{"double just above max", `"double"`, `1.7976931348623158e308`, avsc.CodeLiteralOutOfRange},
		{"negative double just above max", `"double"`, `-1.7976931348623158e308`, avsc.CodeLiteralOutOfRange},
		{"boolean as string", `"boolean"`, `"true"`, avsc.CodeBadLiteral},
		{"null as zero", `"null"`, `0`, avsc.CodeBadLiteral},
		{"string as number", `"string"`, `1`, avsc.CodeBadLiteral},
		{"bytes beyond latin1", `"bytes"`, `"Ā"`, avsc.CodeBadLiteral},
		{"fixed too short", `{"type":"fixed","name":"F","size":3}`, `"ab"`, avsc.CodeLiteralLengthMismatch},
		{"unknown symbol", `{"type":"enum","name":"E","symbols":["A"]}`, `"Z"`, avsc.CodeUnknownEnumSymbol},
		{"union against first branch", `["null","int"]`, `7`, avsc.CodeBadLiteral},
		{"array element", `{"type":"array","items":"int"}`, `[1,"two"]`, avsc.CodeBadLiteral},
		{"map value", `{"type":"map","values":"long"}`, `{"a":true}`, avsc.CodeBadLiteral},
		{"record missing field", `{"type":"record","name":"P","fields":[{"name":"x","type":"int"}]}`, `{}`, avsc.CodeMissingFieldValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, iss := parseDefault(t, c.typ, c.def)
			require.Len(t, iss, 1, "%v", iss)
			assert.Equal(t, c.code, iss[0].Code)
			assert.False(t, f.HasDefault())
		})
	}
}

func TestDefaults_MalformedUUIDKept(t *testing.T) {
	f, iss := parseDefault(t, `{"type":"string","logicalType":"uuid"}`, `"abc"`)
	require.Len(t, iss, 1)
	assert.Equal(t, avsc.CodeBadUUIDLiteral, iss[0].Code)
	require.True(t, f.HasDefault())
	assert.Equal(t, "abc", f.Default().(*model.StringLiteral).String())
}

func TestDefaults_Containers(t *testing.T) {
	f, iss := parseDefault(t,
		`{"type":"record","name":"P","fields":[{"name":"tags","type":{"type":"array","items":"string"}},{"name":"m","type":{"type":"map","values":["null","double"]}}]}`,
		`{"tags":["a","b"],"m":{"x":null,"y":{"double":2.5}},"extra":1}`)
	require.Empty(t, iss)
	rec, ok := f.Default().(*model.RecordLiteral)
	require.True(t, ok)
	assert.Equal(t, model.TypeRecord, rec.Type())

	tags := rec.Fields()["tags"].(*model.ArrayLiteral)
	require.Len(t, tags.Items(), 2)
	assert.Equal(t, "b", tags.Items()[1].(*model.StringLiteral).String())

	m := rec.Fields()["m"].(*model.MapLiteral)
	assert.Equal(t, model.TypeNull, m.Entries()["x"].Type())
	assert.Equal(t, 2.5, m.Entries()["y"].(*model.DoubleLiteral).Double())
}

func TestDefaults_UnionBranchSelection(t *testing.T) {
	typ := `{"type":"array","items":["null","int",{"type":"string","logicalType":"uuid"},{"type":"enum","name":"ns.E","symbols":["A"]}]}`
	f, iss := parseDefault(t, typ, `[null, {"int": 3}, {"uuid": "123e4567-e89b-12d3-a456-426614174000"}, {"ns.E": "A"}]`)
	require.Len(t, iss, 1)
	assert.Equal(t, avsc.CodeUseOfFullName, iss[0].Code)
	items := f.Default().(*model.ArrayLiteral).Items()
	require.Len(t, items, 4)
	assert.Equal(t, model.TypeNull, items[0].Type())
	assert.Equal(t, int32(3), items[1].(*model.IntLiteral).Int())
	assert.Equal(t, model.TypeString, items[2].Type())
	assert.Equal(t, "A", items[3].(*model.EnumLiteral).Symbol())

	_, iss = parseDefault(t, typ, `[{"long": 3}]`)
	require.Len(t, iss, 2)
	assert.Equal(t, avsc.CodeBadLiteral, iss[1].Code)
	inner, ok := avsc.AsIssues(iss[1].Cause)
	require.True(t, ok)
	assert.Equal(t, avsc.CodeNoUnionBranch, inner[0].Code)
}

func TestDefaults_LiteralLocation(t *testing.T) {
	f, _ := parseDefault(t, `"int"`, `5`)
	loc := f.Default().Location()
	assert.Equal(t, 1, loc.Start.Line)
	assert.Equal(t, 74, loc.Start.Column)
}

func TestDefaults_Deferred(t *testing.T) {
	src := `{"type":"record","name":"R","fields":[
		{"name":"e","type":"E","default":"B"},
		{"name":"bad","type":"E","default":"Z"},
		{"name":"def","type":{"type":"enum","name":"E","symbols":["A","B"]}}
	]}`

	res := avsc.ParseString(src)
	require.True(t, res.OK())
	assert.Empty(t, res.Issues)
	rec := res.TopLevel().(*model.RecordSchema)
	e := rec.Field("e")
	require.True(t, e.HasUnparsedDefault())
	raw := e.Default().(*model.UnparsedLiteral)
	assert.Equal(t, model.TypeUnknown, raw.Type())
	assert.Nil(t, raw.Schema())
	assert.Equal(t, "B", raw.Value())
	assert.Len(t, res.UnparsedDefaults(), 2)

	added := res.DecodeDeferredDefaults()
	require.Len(t, added, 1)
	assert.Equal(t, avsc.CodeUnknownEnumSymbol, added[0].Code)
	assert.Equal(t, added, res.Issues)
	assert.Equal(t, "B", e.Default().(*model.EnumLiteral).Symbol())
	assert.False(t, rec.Field("bad").HasDefault())
	assert.Empty(t, res.UnparsedDefaults())

	// a second pass has nothing left to do
	assert.Empty(t, res.DecodeDeferredDefaults())
}

func TestDefaults_DeferredOption(t *testing.T) {
	src := `{"type":"record","name":"R","fields":[
		{"name":"f","type":["null","F"],"default":null},
		{"name":"g","type":{"type":"fixed","name":"F","size":1}}
	]}`
	res := avsc.NewParser(avsc.WithDeferredDefaults(true)).ParseString(src)
	require.True(t, res.OK())
	assert.Empty(t, res.Issues)
	f := res.TopLevel().(*model.RecordSchema).Field("f")
	require.True(t, f.HasDefault())
	assert.Equal(t, model.TypeNull, f.Default().Type())
}

func TestDefaults_DeferredUnresolvedStaysUnparsed(t *testing.T) {
	res := avsc.NewParser(avsc.WithDeferredDefaults(true)).ParseString(
		`{"type":"record","name":"R","fields":[{"name":"f","type":"Nowhere","default":1}]}`)
	require.True(t, res.OK())
	assert.Equal(t, []string{avsc.CodeUnresolvedReference}, codes(res.Issues))
	assert.Len(t, res.UnparsedDefaults(), 1)
}

func TestDefaults_DuplicateFieldNotDeferred(t *testing.T) {
	res := avsc.ParseString(`{"type":"record","name":"R","fields":[
		{"name":"a","type":"int"},
		{"name":"a","type":"E","default":"Z"},
		{"name":"e","type":{"type":"enum","name":"E","symbols":["A"]}}
	]}`)
	require.True(t, res.OK())
	assert.Equal(t, []string{avsc.CodeDuplicateField}, codes(res.Issues))
	assert.Empty(t, res.UnparsedDefaults())
	assert.Empty(t, res.DecodeDeferredDefaults())
	assert.Len(t, res.Issues, 1)
}
