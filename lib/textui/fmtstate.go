// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package textui

import (
	"fmt"
	"strconv"
	"strings"
)

// fmtStateString returns the fmt.Printf string that produced a given
// fmt.State and verb.
func fmtStateString(st fmt.State, verb rune) string {
	width, ok := st.Width()
	if !ok {
		width = -1
	}
	return fmtStateStringWidth(st, verb, width)
}

// fmtStateStringWidth is like fmtStateString, but with the width
// replaced; a negative width means no width.
func fmtStateStringWidth(st fmt.State, verb rune, width int) string {
	var ret strings.Builder
	ret.WriteByte('%')
	for _, flag := range []int{'-', '+', '#', ' ', '0'} {
		if st.Flag(flag) {
			ret.WriteByte(byte(flag))
		}
	}
	if width >= 0 {
		ret.WriteString(strconv.Itoa(width))
	}
	if prec, ok := st.Precision(); ok {
		ret.WriteByte('.')
		if prec != 0 {
			ret.WriteString(strconv.Itoa(prec))
		}
	}
	ret.WriteRune(verb)
	return ret.String()
}
