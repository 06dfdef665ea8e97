// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charygao/rubinius/lib/vector"
)

func runVecctl(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argparser := newArgparser(strings.NewReader(stdin), &stdout, &stderr)
	argparser.SetArgs(args)
	err := argparser.ExecuteContext(context.Background())
	t.Logf("stderr:\n%s", stderr.String())
	return stdout.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))
	return filename
}

func TestSubcommands(t *testing.T) {
	nums := writeFile(t, `[3, 1, 2, 1]`)
	other := writeFile(t, `[1, 4]`)
	nested := writeFile(t, `[1, [2, [3, [4]]], 5]`)

	type tc struct {
		Args []string
		Exp  string
	}
	testcases := map[string]tc{
		"sort":         {Args: []string{"sort", nums}, Exp: `[1,1,2,3]`},
		"sort-desc":    {Args: []string{"sort", "--desc", nums}, Exp: `[3,2,1,1]`},
		"uniq":         {Args: []string{"uniq", nums}, Exp: `[3,1,2]`},
		"union":        {Args: []string{"union", nums, other}, Exp: `[3,1,2,4]`},
		"intersect":    {Args: []string{"intersect", nums, other}, Exp: `[1]`},
		"diff":         {Args: []string{"diff", nums, other}, Exp: `[3,2]`},
		"flatten":      {Args: []string{"flatten", nested}, Exp: `[1,2,3,4,5]`},
		"flatten-1":    {Args: []string{"flatten", "--level=1", nested}, Exp: `[1,2,[3,[4]],5]`},
		"slice":        {Args: []string{"slice", nums, "-2"}, Exp: `[2,1]`},
		"slice-count":  {Args: []string{"slice", nums, "1", "2"}, Exp: `[1,2]`},
		"inspect":      {Args: []string{"inspect", nested}, Exp: `[1, [2, [3, [4]]], 5]`},
		"inspect-flag": {Args: []string{"--inspect", "uniq", nums}, Exp: `[3, 1, 2]`},
		"combinations": {Args: []string{"combinations", other, "1"}, Exp: `[[1],[4]]`},
		"count":        {Args: []string{"combinations", "--count", nums, "2"}, Exp: `6`},
		"permutations": {Args: []string{"permutations", other}, Exp: `[[1,4],[4,1]]`},
		"limit":        {Args: []string{"repeated-permutations", "--limit=3", other, "2"}, Exp: `[[1,1],[1,4],[4,1]]`},
		"rep-combos":   {Args: []string{"repeated-combinations", other, "2"}, Exp: `[[1,1],[1,4],[4,4]]`},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			out, err := runVecctl(t, "", tc.Args...)
			require.NoError(t, err)
			assert.Equal(t, tc.Exp, strings.TrimSpace(out))
		})
	}
}

func TestStdin(t *testing.T) {
	out, err := runVecctl(t, `["b", "a"]`, "sort", "-")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, strings.TrimSpace(out))
}

func TestStdinTwice(t *testing.T) {
	out, err := runVecctl(t, `[2, 1, 2]`, "intersect", "-", "-")
	require.NoError(t, err)
	assert.Equal(t, `[2,1]`, strings.TrimSpace(out))
}

func TestShuffleSeed(t *testing.T) {
	input := writeFile(t, `[1, 2, 3, 4, 5, 6, 7, 8]`)
	out1, err := runVecctl(t, "", "shuffle", "--seed=42", input)
	require.NoError(t, err)
	out2, err := runVecctl(t, "", "shuffle", "--seed=42", input)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestErrors(t *testing.T) {
	mixed := writeFile(t, `[1, "x"]`)
	nums := writeFile(t, `[1, 2]`)

	_, err := runVecctl(t, "", "sort", mixed)
	assert.ErrorContains(t, err, "comparison of")

	_, err = runVecctl(t, "", "slice", nums, "5")
	assert.ErrorContains(t, err, "out of range")

	_, err = runVecctl(t, "", "slice", nums, "1.5")
	assert.ErrorContains(t, err, "START")

	_, err = runVecctl(t, "", "sort", writeFile(t, `{"a": 1}`))
	assert.ErrorContains(t, err, "cannot convert")

	_, err = runVecctl(t, "", "sort")
	assert.Error(t, err)

	four := writeFile(t, `[1, 2, 3, 4]`)
	_, err = runVecctl(t, "", "repeated-permutations", "--count", four, "64")
	assert.ErrorContains(t, err, "too large to count")

	out, err := runVecctl(t, "", "repeated-permutations", "--limit=2", four, "40")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[[1,1,1,"), out)
}

func TestLayout(t *testing.T) {
	input := writeFile(t, `[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]`)
	out, err := runVecctl(t, "", "layout", "--shift=3", input)
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded: [1, 2, 3")
	assert.Contains(t, out, "# shift 3: [4, 5")
	assert.Contains(t, out, "Start: (int) 3")
}

func TestBench(t *testing.T) {
	out, err := runVecctl(t, "", "bench", "--size=16", "--ops=1000", "--workload=queue,splice")
	require.NoError(t, err)
	assert.Contains(t, out, "workload=queue")
	assert.Contains(t, out, "workload=splice")
	assert.NotContains(t, out, "workload=push")

	_, err = runVecctl(t, "", "bench", "--workload=nope")
	assert.ErrorContains(t, err, "unknown workload")
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()
	type tc struct {
		In  string
		Exp int
		Err bool
	}
	testcases := map[string]tc{
		"int":      {In: "3", Exp: 3},
		"negative": {In: "-2", Exp: -2},
		"float":    {In: "2.0", Exp: 2},
		"fraction": {In: "2.5", Err: true},
		"string":   {In: `"3"`, Err: true},
		"garbage":  {In: "three", Err: true},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			got, err := parseIntArg(tc.In)
			if tc.Err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Exp, got)
		})
	}

	_, err := parseIntArg("2.5")
	var typeErr *vector.TypeError
	assert.ErrorAs(t, err, &typeErr)
}
