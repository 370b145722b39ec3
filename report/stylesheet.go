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

package report

// ANSI escapes for the renderer. Errors are red, warnings yellow, remarks
// cyan; gutters, arrows and secondary underlines are blue.
const (
	ansiReset   = "\033[0m"
	ansiRed     = "31"
	ansiYellow  = "33"
	ansiCyan    = "36"
	ansiBlue    = "34"
	ansiNormal  = "\033[0;"
	ansiBold    = "\033[1;"
	ansiColorOn = "m"
)

// styleSheet picks escapes for a [Renderer]. Every field is empty when the
// renderer does not colorize.
type styleSheet struct {
	werror  bool
	colored bool

	reset    string
	bError   string
	bWarning string
	bAccent  string
}

func newStyleSheet(r Renderer) styleSheet {
	c := styleSheet{werror: r.WarningsAreErrors, colored: r.Colorize}
	if c.colored {
		c.reset = ansiReset
		c.bError = ansiBold + ansiRed + ansiColorOn
		c.bWarning = ansiBold + ansiYellow + ansiColorOn
		c.bAccent = ansiBold + ansiBlue + ansiColorOn
	}
	return c
}

// ColorForLevel returns the escape for the normal color of a level.
func (c styleSheet) ColorForLevel(l Level) string {
	return c.level(l, ansiNormal)
}

// BoldForLevel returns the escape for the bold color of a level.
func (c styleSheet) BoldForLevel(l Level) string {
	return c.level(l, ansiBold)
}

func (c styleSheet) level(l Level, weight string) string {
	if !c.colored {
		return ""
	}
	var color string
	switch {
	case l == Error, l == ICE, l == Warning && c.werror:
		color = ansiRed
	case l == Warning:
		color = ansiYellow
	case l == Remark:
		color = ansiCyan
	default:
		return ""
	}
	return weight + color + ansiColorOn
}
