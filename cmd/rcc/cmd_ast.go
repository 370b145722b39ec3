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

package main

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pulanski/rcc/ast"
	"github.com/pulanski/rcc/token"
)

func (a *app) newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the abstract syntax tree of a file as YAML",
		Long: `Parse and lower a C file, printing its functions and declarations as YAML.
Declarations containing syntax errors are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.compile(cmd.Context(), args)
			if err != nil {
				return err
			}
			if _, _, err := a.render(cmd.ErrOrStderr(), results); err != nil {
				return err
			}
			for _, res := range results {
				if res.Unit == nil {
					return fmt.Errorf("%s: could not build an AST", res.Path)
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(astNode(reflect.ValueOf(res.Unit.Functions))); err != nil {
					return err
				}
				if err := enc.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

var (
	dataTypeType = reflect.TypeFor[ast.DataType]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
	spanType     = reflect.TypeFor[token.Span]()
)

// astNode converts an AST value to YAML. Nodes reached through a pointer or
// interface are tagged with their type under "node"; types print as C.
func astNode(v reflect.Value) *yaml.Node {
	if !v.IsValid() {
		return scalar("null", "!!null")
	}
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
		return scalar("null", "!!null")
	}
	if v.Type().Implements(dataTypeType) {
		return scalar(v.Interface().(ast.DataType).String(), "")
	}

	switch v.Kind() {
	case reflect.Interface:
		return astNode(v.Elem())
	case reflect.Pointer:
		if v.Elem().Kind() == reflect.Struct {
			return mapping(v.Elem(), v.Elem().Type().Name())
		}
		return astNode(v.Elem())
	case reflect.Struct:
		return mapping(v, "")
	case reflect.Slice:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			seq.Content = append(seq.Content, astNode(v.Index(i)))
		}
		return seq
	}
	if v.Type().Implements(stringerType) {
		return scalar(v.Interface().(fmt.Stringer).String(), "")
	}
	return scalar(fmt.Sprint(v.Interface()), "")
}

func mapping(v reflect.Value, name string) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	if name != "" {
		m.Content = append(m.Content, scalar("node", ""), scalar(name, ""))
	}
	for i := range v.NumField() {
		field := v.Type().Field(i)
		value := v.Field(i)
		if !field.IsExported() || field.Type == spanType {
			continue
		}
		// Enumerations print even when zero.
		enum := field.Type.Kind() != reflect.Interface && field.Type.Kind() != reflect.Pointer &&
			field.Type.Implements(stringerType)
		if value.IsZero() && !enum {
			continue
		}
		m.Content = append(m.Content, scalar(snakeCase(field.Name), ""), astNode(value))
	}
	return m
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
