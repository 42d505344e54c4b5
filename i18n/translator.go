// Package i18n renders diagnostic messages for issue codes.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides values substituted for {name} placeholders in the message.
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		"io-error":                            "cannot read schema source: {detail}",
		"json-parse-error":                    "json parse error: {detail}",
		"yaml-parse-error":                    "yaml parse error: {detail}",
		"duplicate-key":                       "duplicate key at {path}",
		"limit-exceeded":                      "input limit exceeded: {detail}",
		"missing-property":                    "expected a \"{property}\" property because {reason}",
		"bad-json-kind":                       "\"{property}\" is expected to be a {expected}, not a {actual}",
		"unknown-type":                        "unknown type \"{type}\", expecting a primitive, record, enum, fixed, array or map",
		"illegal-type-name":                   "illegal type \"{type}\", expecting a primitive type, an inline definition or a reference to a named type",
		"bad-schema-node":                     "don't know how to parse a schema out of a {kind}",
		"nested-union":                        "a union may not directly contain another union",
		"duplicate-definition":                "{name} is already defined at {previous}",
		"duplicate-top-level":                 "document already has a top-level schema",
		"bad-fixed-size":                      "size of fixed {name} must be a non-negative integer, got {size}",
		"use-of-full-name":                    "{type} name \"{name}\" is a full name, a simple name with a namespace is preferred",
		"ignored-namespace":                   "namespace \"{namespace}\" of {type} is ignored because \"{name}\" is a full name",
		"duplicate-alias":                     "duplicate alias {alias}",
		"unresolved-reference":                "unresolved reference to {name}",
		"duplicate-field":                     "duplicate field {field} in record {record}",
		"duplicate-symbol":                    "duplicate symbol {symbol} in enum {enum}",
		"bad-enum-default":                    "default \"{default}\" of enum {enum} is not one of its symbols [{symbols}]",
		"bad-field-order":                     "invalid field order {order}, expecting ascending, descending or ignore",
		"bad-property-type":                   "property {property} is expected to be an {expected}, got {actual}",
		"unknown-logical-type":                "unknown logical type \"{logicalType}\"",
		"mismatched-logical-type":             "logical type {logicalType} cannot decorate {type}",
		"precision-required":                  "{logicalType} on {type} requires a precision",
		"precision-smaller-than-scale":        "precision {precision} is smaller than scale {scale} (at {scaleAt})",
		"precision-too-large":                 "precision {precision} exceeds the maximum of {max} for this size",
		"unknown-string-representation":       "unknown string representation \"{value}\"",
		"string-representation-on-non-string": "string representation \"{value}\" is meaningless on {type}",
		"bad-literal":                         "value {value} of field {field} is not a valid {type}",
		"literal-out-of-range":                "value {value} of field {field} is out of range for {type}",
		"literal-length-mismatch":             "value of field {field} has {actual} bytes, fixed {type} needs {expected}",
		"unknown-enum-symbol":                 "value \"{symbol}\" of field {field} is not a symbol of {enum}",
		"missing-field-value":                 "missing value for field {field} of record {record}",
		"no-union-branch":                     "value {value} of field {field} selects no union branch",
		"bad-uuid-literal":                    "value \"{value}\" of field {field} is not a valid uuid",
		"bad-default":                         "default of field {field} cannot be decoded against an empty union",
	},
	"ja": {
		"io-error":                            "スキーマを読み込めません: {detail}",
		"json-parse-error":                    "JSON 解析エラー: {detail}",
		"yaml-parse-error":                    "YAML 解析エラー: {detail}",
		"duplicate-key":                       "キーが重複しています ({path})",
		"limit-exceeded":                      "入力の上限を超えました: {detail}",
		"missing-property":                    "\"{property}\" プロパティが必要です ({reason})",
		"bad-json-kind":                       "\"{property}\" は {expected} である必要があります ({actual})",
		"unknown-type":                        "未知の型 \"{type}\" です",
		"illegal-type-name":                   "型 \"{type}\" はこの位置では使用できません",
		"bad-schema-node":                     "{kind} からスキーマを解析できません",
		"nested-union":                        "ユニオンを直接ネストすることはできません",
		"duplicate-definition":                "{name} は既に {previous} で定義されています",
		"duplicate-top-level":                 "トップレベルのスキーマが既に存在します",
		"bad-fixed-size":                      "fixed {name} のサイズは 0 以上の整数である必要があります ({size})",
		"use-of-full-name":                    "{type} の名前 \"{name}\" は完全修飾名です",
		"ignored-namespace":                   "\"{name}\" が完全修飾名のため namespace \"{namespace}\" は無視されます",
		"duplicate-alias":                     "エイリアス {alias} が重複しています",
		"unresolved-reference":                "{name} への参照を解決できません",
		"duplicate-field":                     "レコード {record} のフィールド {field} が重複しています",
		"duplicate-symbol":                    "列挙 {enum} のシンボル {symbol} が重複しています",
		"bad-enum-default":                    "列挙 {enum} のデフォルト \"{default}\" はシンボルではありません [{symbols}]",
		"bad-field-order":                     "フィールド順序 {order} は不正です",
		"bad-property-type":                   "プロパティ {property} は {expected} である必要があります ({actual})",
		"unknown-logical-type":                "未知の論理型 \"{logicalType}\" です",
		"mismatched-logical-type":             "論理型 {logicalType} は {type} に適用できません",
		"precision-required":                  "{type} の {logicalType} には precision が必要です",
		"precision-smaller-than-scale":        "precision {precision} が scale {scale} より小さいです ({scaleAt})",
		"precision-too-large":                 "precision {precision} が上限 {max} を超えています",
		"unknown-string-representation":       "未知の文字列表現 \"{value}\" です",
		"string-representation-on-non-string": "文字列表現 \"{value}\" は {type} には意味を持ちません",
		"bad-literal":                         "フィールド {field} の値 {value} は {type} として不正です",
		"literal-out-of-range":                "フィールド {field} の値 {value} は {type} の範囲外です",
		"literal-length-mismatch":             "フィールド {field} の値は {actual} バイトですが fixed {type} は {expected} バイトです",
		"unknown-enum-symbol":                 "フィールド {field} の値 \"{symbol}\" は {enum} のシンボルではありません",
		"missing-field-value":                 "レコード {record} のフィールド {field} の値がありません",
		"no-union-branch":                     "フィールド {field} の値 {value} に一致するユニオンの分岐がありません",
		"bad-uuid-literal":                    "フィールド {field} の値 \"{value}\" は UUID ではありません",
		"bad-default":                         "フィールド {field} のデフォルトは空のユニオンに対して解析できません",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		// fall back to English, then to the bare code
		if tmpl, ok = catalogs["en"][code]; !ok {
			return code
		}
	}
	return Fill(tmpl, data)
}

// Fill replaces {name} placeholders in tmpl with values from data.
// Placeholders without a value are left as is.
func Fill(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// HasMessage reports whether the built-in catalogue knows code.
func HasMessage(code string) bool {
	_, ok := catalogs["en"][code]
	return ok
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
