// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import "fmt"

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

const (
	Unknown Kind = iota // A run of characters that matches no token rule.
	EOF                 // The synthetic end-of-file token.

	Whitespace // Horizontal whitespace.
	Newline    // A line break.
	Comment    // A line or block comment.
	Directive  // A preprocessor directive line.

	Identifier
	IntegerConstant
	FloatingConstant
	CharConstant
	String

	Plus
	Minus
	Star
	Slash
	Percent
	Tilde
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	LShift
	RShift
	Eq
	Lt
	Gt
	Ge
	Le
	EqEq
	Ne
	Bang
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	LShiftEq
	RShiftEq
	Question
	Arrow
	Inc
	Dec
	Dot
	Comma
	Semicolon
	Colon
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Ellipsis
	StarStar // Only produced by maximal munch; never present in a [Stream].

	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwRegister
	KwRestrict
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwAlignas
	KwAlignof
	KwAtomic
	KwBool
	KwComplex
	KwGeneric
	KwImaginary
	KwNoreturn
	KwStaticAssert
	KwThreadLocal
	KwFuncName

	total
)

type kindInfo struct {
	name string // Upper-case name used in tree dumps.
	text string // Source spelling, or a description for token classes.
}

var kinds = [total]kindInfo{
	Unknown:          {"UNKNOWN", "unknown"},
	EOF:              {"EOF", "end of file"},
	Whitespace:       {"WHITESPACE", "whitespace"},
	Newline:          {"NEWLINE", "newline"},
	Comment:          {"COMMENT", "comment"},
	Directive:        {"DIRECTIVE", "preprocessor directive"},
	Identifier:       {"IDENTIFIER", "identifier"},
	IntegerConstant:  {"INTEGER_CONSTANT", "integer constant"},
	FloatingConstant: {"FLOATING_CONSTANT", "floating constant"},
	CharConstant:     {"CHAR_CONSTANT", "character constant"},
	String:           {"STRING", "string literal"},

	Plus:      {"PLUS", "+"},
	Minus:     {"MINUS", "-"},
	Star:      {"STAR", "*"},
	Slash:     {"SLASH", "/"},
	Percent:   {"PERCENT", "%"},
	Tilde:     {"TILDE", "~"},
	Amp:       {"AMP", "&"},
	AmpAmp:    {"DOUBLEAMP", "&&"},
	Pipe:      {"PIPE", "|"},
	PipePipe:  {"DOUBLEPIPE", "||"},
	Caret:     {"CARET", "^"},
	LShift:    {"LSHIFT", "<<"},
	RShift:    {"RSHIFT", ">>"},
	Eq:        {"EQ", "="},
	Lt:        {"LT", "<"},
	Gt:        {"GT", ">"},
	Ge:        {"GE", ">="},
	Le:        {"LE", "<="},
	EqEq:      {"EQEQ", "=="},
	Ne:        {"NE", "!="},
	Bang:      {"BANG", "!"},
	PlusEq:    {"PLUSEQ", "+="},
	MinusEq:   {"MINUSEQ", "-="},
	StarEq:    {"STAREQ", "*="},
	SlashEq:   {"SLASHEQ", "/="},
	PercentEq: {"PERCENTEQ", "%="},
	AmpEq:     {"AMPEQ", "&="},
	PipeEq:    {"PIPEEQ", "|="},
	CaretEq:   {"CARETEQ", "^="},
	LShiftEq:  {"LSHIFTEQ", "<<="},
	RShiftEq:  {"RSHIFTEQ", ">>="},
	Question:  {"QUESTION", "?"},
	Arrow:     {"PTR_OP", "->"},
	Inc:       {"INC_OP", "++"},
	Dec:       {"DEC_OP", "--"},
	Dot:       {"DOT", "."},
	Comma:     {"COMMA", ","},
	Semicolon: {"SEMICOLON", ";"},
	Colon:     {"COLON", ":"},
	LParen:    {"LPAREN", "("},
	RParen:    {"RPAREN", ")"},
	LBracket:  {"LBRACKET", "["},
	RBracket:  {"RBRACKET", "]"},
	LBrace:    {"LBRACE", "{"},
	RBrace:    {"RBRACE", "}"},
	Ellipsis:  {"ELLIPSIS", "..."},
	StarStar:  {"DSTAR", "**"},

	KwAuto:         {"AUTO_KW", "auto"},
	KwBreak:        {"BREAK_KW", "break"},
	KwCase:         {"CASE_KW", "case"},
	KwChar:         {"CHAR_KW", "char"},
	KwConst:        {"CONST_KW", "const"},
	KwContinue:     {"CONTINUE_KW", "continue"},
	KwDefault:      {"DEFAULT_KW", "default"},
	KwDo:           {"DO_KW", "do"},
	KwDouble:       {"DOUBLE_KW", "double"},
	KwElse:         {"ELSE_KW", "else"},
	KwEnum:         {"ENUM_KW", "enum"},
	KwExtern:       {"EXTERN_KW", "extern"},
	KwFloat:        {"FLOAT_KW", "float"},
	KwFor:          {"FOR_KW", "for"},
	KwGoto:         {"GOTO_KW", "goto"},
	KwIf:           {"IF_KW", "if"},
	KwInline:       {"INLINE_KW", "inline"},
	KwInt:          {"INT_KW", "int"},
	KwLong:         {"LONG_KW", "long"},
	KwRegister:     {"REGISTER_KW", "register"},
	KwRestrict:     {"RESTRICT_KW", "restrict"},
	KwReturn:       {"RETURN_KW", "return"},
	KwShort:        {"SHORT_KW", "short"},
	KwSigned:       {"SIGNED_KW", "signed"},
	KwSizeof:       {"SIZEOF_KW", "sizeof"},
	KwStatic:       {"STATIC_KW", "static"},
	KwStruct:       {"STRUCT_KW", "struct"},
	KwSwitch:       {"SWITCH_KW", "switch"},
	KwTypedef:      {"TYPEDEF_KW", "typedef"},
	KwUnion:        {"UNION_KW", "union"},
	KwUnsigned:     {"UNSIGNED_KW", "unsigned"},
	KwVoid:         {"VOID_KW", "void"},
	KwVolatile:     {"VOLATILE_KW", "volatile"},
	KwWhile:        {"WHILE_KW", "while"},
	KwAlignas:      {"ALIGNAS_KW", "_Alignas"},
	KwAlignof:      {"ALIGNOF_KW", "_Alignof"},
	KwAtomic:       {"ATOMIC_KW", "_Atomic"},
	KwBool:         {"BOOL_KW", "_Bool"},
	KwComplex:      {"COMPLEX_KW", "_Complex"},
	KwGeneric:      {"GENERIC_KW", "_Generic"},
	KwImaginary:    {"IMAGINARY_KW", "_Imaginary"},
	KwNoreturn:     {"NORETURN_KW", "_Noreturn"},
	KwStaticAssert: {"STATIC_ASSERT_KW", "_Static_assert"},
	KwThreadLocal:  {"THREAD_LOCAL_KW", "_Thread_local"},
	KwFuncName:     {"FUNC_NAME_KW", "__func__"},
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, KwFuncName-KwAuto+1)
	for k := KwAuto; k <= KwFuncName; k++ {
		m[kinds[k].text] = k
	}
	return m
}()

// Keyword looks up the keyword kind spelled by s.
func Keyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// String implements [fmt.Stringer].
//
// Punctuation and keywords are rendered as they are spelled in source; token
// classes such as identifiers are rendered as a short description.
func (k Kind) String() string {
	if k >= total {
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
	return kinds[k].text
}

// Name returns the upper-case name of this kind, such as SEMICOLON.
func (k Kind) Name() string {
	if k >= total {
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
	return kinds[k].name
}

// Quoted returns the kind's spelling wrapped in backticks for punctuation and
// keywords, and its plain description otherwise.
func (k Kind) Quoted() string {
	if k.IsPunct() || k.IsKeyword() {
		return "`" + k.String() + "`"
	}
	return k.String()
}

// IsTrivia returns whether this kind is filtered out of the token stream.
func (k Kind) IsTrivia() bool {
	return k >= Whitespace && k <= Directive
}

// IsKeyword returns whether this kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwAuto && k <= KwFuncName
}

// IsPunct returns whether this kind is a punctuator.
func (k Kind) IsPunct() bool {
	return k >= Plus && k <= StarStar
}

// IsConstant returns whether this kind is a numeric or character constant.
func (k Kind) IsConstant() bool {
	return k == IntegerConstant || k == FloatingConstant || k == CharConstant
}
