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

package cst

import "fmt"

// Kind identifies the grammar production a [Tree] was parsed from.
type Kind byte

const (
	// ErrorTree wraps tokens consumed during error recovery, or marks the
	// spot where a required token was missing.
	ErrorTree Kind = iota

	TranslationUnit
	ExternDecl
	FunctionDef
	Declaration
	StaticAssertDeclaration
	DeclarationSpecifiers
	StorageClassSpecifier
	TypeSpecifier
	TypeQualifier
	FunctionSpecifier
	AlignmentSpecifier
	AtomicTypeSpecifier
	StructOrUnionSpecifier
	StructOrUnion
	StructDeclarationList
	StructDeclaration
	SpecifierQualifierList
	StructDeclaratorList
	StructDeclarator
	EnumSpecifier
	EnumeratorList
	Enumerator
	InitDeclaratorList
	InitDeclarator
	Initializer
	InitializerList
	Designation
	DesignatorList
	Designator
	Declarator
	DirectDeclarator
	Pointer
	TypeQualifierList
	ParamTypeList
	ParamList
	ParameterDeclaration
	IdentifierList
	TypeName
	AbstractDeclarator
	DirectAbstractDeclarator
	DeclarationList

	CompoundStatement
	StatementList
	Statement
	LabeledStatement
	ExpressionStatement
	SelectionStatement
	IterationStatement
	JumpStatement

	Expression
	AssignmentExpression
	ConditionalExpression
	ConstantExpression
	LogicalOrExpression
	LogicalAndExpression
	InclusiveOrExpression
	ExclusiveOrExpression
	AndExpression
	EqualityExpression
	RelationalExpression
	ShiftExpression
	AdditiveExpression
	MultiplicativeExpression
	CastExpression
	UnaryExpression
	PostfixExpression
	ArgumentExpressionList
	PrimaryExpression
	Constant
	String
	GenericSelection
	GenericAssocList
	GenericAssociation

	total
)

var names = [total]string{
	ErrorTree:                "ErrorTree",
	TranslationUnit:          "TranslationUnit",
	ExternDecl:               "ExternDecl",
	FunctionDef:              "FunctionDef",
	Declaration:              "Declaration",
	StaticAssertDeclaration:  "StaticAssertDeclaration",
	DeclarationSpecifiers:    "DeclarationSpecifiers",
	StorageClassSpecifier:    "StorageClassSpecifier",
	TypeSpecifier:            "TypeSpecifier",
	TypeQualifier:            "TypeQualifier",
	FunctionSpecifier:        "FunctionSpecifier",
	AlignmentSpecifier:       "AlignmentSpecifier",
	AtomicTypeSpecifier:      "AtomicTypeSpecifier",
	StructOrUnionSpecifier:   "StructOrUnionSpecifier",
	StructOrUnion:            "StructOrUnion",
	StructDeclarationList:    "StructDeclarationList",
	StructDeclaration:        "StructDeclaration",
	SpecifierQualifierList:   "SpecifierQualifierList",
	StructDeclaratorList:     "StructDeclaratorList",
	StructDeclarator:         "StructDeclarator",
	EnumSpecifier:            "EnumSpecifier",
	EnumeratorList:           "EnumeratorList",
	Enumerator:               "Enumerator",
	InitDeclaratorList:       "InitDeclaratorList",
	InitDeclarator:           "InitDeclarator",
	Initializer:              "Initializer",
	InitializerList:          "InitializerList",
	Designation:              "Designation",
	DesignatorList:           "DesignatorList",
	Designator:               "Designator",
	Declarator:               "Declarator",
	DirectDeclarator:         "DirectDeclarator",
	Pointer:                  "Pointer",
	TypeQualifierList:        "TypeQualifierList",
	ParamTypeList:            "ParamTypeList",
	ParamList:                "ParamList",
	ParameterDeclaration:     "ParameterDeclaration",
	IdentifierList:           "IdentifierList",
	TypeName:                 "TypeName",
	AbstractDeclarator:       "AbstractDeclarator",
	DirectAbstractDeclarator: "DirectAbstractDeclarator",
	DeclarationList:          "DeclarationList",
	CompoundStatement:        "CompoundStatement",
	StatementList:            "StatementList",
	Statement:                "Statement",
	LabeledStatement:         "LabeledStatement",
	ExpressionStatement:      "ExpressionStatement",
	SelectionStatement:       "SelectionStatement",
	IterationStatement:       "IterationStatement",
	JumpStatement:            "JumpStatement",
	Expression:               "Expression",
	AssignmentExpression:     "AssignmentExpression",
	ConditionalExpression:    "ConditionalExpression",
	ConstantExpression:       "ConstantExpression",
	LogicalOrExpression:      "LogicalOrExpression",
	LogicalAndExpression:     "LogicalAndExpression",
	InclusiveOrExpression:    "InclusiveOrExpression",
	ExclusiveOrExpression:    "ExclusiveOrExpression",
	AndExpression:            "AndExpression",
	EqualityExpression:       "EqualityExpression",
	RelationalExpression:     "RelationalExpression",
	ShiftExpression:          "ShiftExpression",
	AdditiveExpression:       "AdditiveExpression",
	MultiplicativeExpression: "MultiplicativeExpression",
	CastExpression:           "CastExpression",
	UnaryExpression:          "UnaryExpression",
	PostfixExpression:        "PostfixExpression",
	ArgumentExpressionList:   "ArgumentExpressionList",
	PrimaryExpression:        "PrimaryExpression",
	Constant:                 "Constant",
	String:                   "String",
	GenericSelection:         "GenericSelection",
	GenericAssocList:         "GenericAssocList",
	GenericAssociation:       "GenericAssociation",
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, total)
	for k, name := range names {
		m[name] = Kind(k)
	}
	return m
}()

// KindByName looks up a kind by its name, such as "FunctionDef".
func KindByName(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// Kinds returns every kind, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, total)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k >= total {
		return fmt.Sprintf("cst.Kind(%d)", int(k))
	}
	return names[k]
}

// IsBinary returns whether k is one of the left-associative binary
// expression kinds built by operator chains.
func (k Kind) IsBinary() bool {
	return k >= LogicalOrExpression && k <= MultiplicativeExpression
}
