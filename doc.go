// Package avsc parses Avro schema documents (.avsc) into a resolved schema AST.
//
// Package avsc provides:
//
// - A declaration parser for primitives, records, enums, fixed types, arrays,
// maps and unions, including logical types and the "avro.java.string" hint
// - Namespace inheritance and a single-pass reference resolver
// - Type-directed decoding of field defaults into typed literals
// - A diagnostics model via Issues (code, message, source location, params)
//
// Every diagnostic carries a CodeLocation pointing into the source text.
// Problems the parser can work around become Issues on an otherwise usable
// Result; anything that makes the document unusable aborts the parse and is
// reported as the single Issue of a Result without a schema.
//
// Design policy:
// - Keep the public API in the root package and the schema AST in model/.
// - Token sources live under source/, tree assembly and limits under internal/engine.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	res := avsc.ParseFile("user.avsc")
//	if !res.OK() {
//		return res.Err()
//	}
//	rec := res.TopLevel().(*model.RecordSchema)
//
//	p := avsc.NewParser(avsc.WithParseOpt(avsc.StrictParseOpt()))
//	res = p.ParseYAMLFile("user.avsc.yaml")
package avsc
