// Package model defines the schema AST produced by the avsc parser.
//
// Schemas form a closed set of variants (PrimitiveSchema, RecordSchema,
// EnumSchema, FixedSchema, ArraySchema, MapSchema, UnionSchema) behind the
// Schema interface; literals (decoded default values) mirror them behind
// Literal. Places where a schema may be referenced by name hold a
// *SchemaOrRef slot, which is resolved in place once per parse.
//
// Every node carries the CodeLocation it was parsed from.
package model
