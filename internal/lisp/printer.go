/*
Copyright (C) 2023  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package lisp

import (
	"io"
	"strconv"
	"strings"
)

// Show renders v in the printed form defined as follows: Nil -> "()";
// a list pair -> "(e1 e2 ... en)"; a dotted pair -> "(Pair FST SND)";
// symbols print their name verbatim; Environment and procedures print
// as opaque, unreadable tokens.
func Show(v Value) string {
	var b strings.Builder
	Write(&b, v)
	return b.String()
}

// Write streams the printed form of v to w without building an
// intermediate string for the whole value.
func Write(w io.Writer, v Value) {
	switch v.kind {
	case KindNil:
		io.WriteString(w, "()")
	case KindPair:
		if v.IsList() {
			io.WriteString(w, "(")
			cur := v
			first := true
			for !cur.IsNil() {
				if !first {
					io.WriteString(w, " ")
				}
				first = false
				Write(w, cur.pair.fst)
				cur = cur.pair.snd
			}
			io.WriteString(w, ")")
		} else {
			io.WriteString(w, "(Pair ")
			Write(w, v.pair.fst)
			io.WriteString(w, " ")
			Write(w, v.pair.snd)
			io.WriteString(w, ")")
		}
	case KindConstant, KindVariable, KindKeyword:
		io.WriteString(w, v.name)
	case KindBoolean:
		if v.flag {
			io.WriteString(w, "True")
		} else {
			io.WriteString(w, "False")
		}
	case KindNumber:
		io.WriteString(w, strconv.FormatFloat(v.num, 'g', -1, 64))
	case KindString:
		io.WriteString(w, `"`)
		io.WriteString(w, escapeString(v.str))
		io.WriteString(w, `"`)
	case KindEnvironment:
		io.WriteString(w, "#<environment>")
	case KindAtomic, KindAbstract, KindWrap:
		io.WriteString(w, "#<procedure>")
	default:
		io.WriteString(w, "#<unknown>")
	}
}

// escapeString implements symmetric escaping: a literal `"` is written
// back as `\"` so that Read(Show(v)) is lawful for every String, not
// only quote-free ones. A literal backslash is escaped too, so the
// escaping is unambiguous to invert.
func escapeString(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
