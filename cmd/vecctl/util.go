// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/charygao/rubinius/lib/textui"
	"github.com/charygao/rubinius/lib/value"
	"github.com/charygao/rubinius/lib/vector"
)

type runeScanner struct {
	ctx            context.Context //nolint:containedctx // For detecting shutdown from methods
	progress       textui.Portion[int64]
	progressWriter *textui.Progress[textui.Portion[int64]]
	unreadCnt      uint64
	reader         *bufio.Reader
	closer         io.Closer
}

// newRuneScanner wraps r, logging read progress if size is known
// (size < 0 means unknown, as for stdin).
func newRuneScanner(ctx context.Context, r io.Reader, size int64) *runeScanner {
	ret := &runeScanner{
		ctx:    ctx,
		reader: bufio.NewReader(r),
	}
	if size >= 0 {
		ret.progress.D = size
		ret.progressWriter = textui.NewProgress[textui.Portion[int64]](ctx, dlog.LogLevelDebug, textui.Tunable(1*time.Second))
	}
	if c, ok := r.(io.Closer); ok {
		ret.closer = c
	}
	return ret
}

func (rs *runeScanner) ReadRune() (r rune, size int, err error) {
	if err := rs.ctx.Err(); err != nil {
		return 0, 0, err
	}
	r, size, err = rs.reader.ReadRune()
	if rs.unreadCnt > 0 {
		rs.unreadCnt--
	} else if rs.progressWriter != nil {
		rs.progress.N += int64(size)
		rs.progressWriter.Set(rs.progress)
	}
	return
}

func (rs *runeScanner) UnreadRune() error {
	if err := rs.ctx.Err(); err != nil {
		return err
	}
	if err := rs.reader.UnreadRune(); err != nil {
		return err
	}
	rs.unreadCnt++
	return nil
}

func (rs *runeScanner) Close() error {
	if rs.progressWriter != nil {
		rs.progressWriter.Done()
	}
	if rs.closer == nil {
		return nil
	}
	return rs.closer.Close()
}

// readJSONFile reads a JSON array from the named file, or from the
// command's stdin if filename is "-".  The caller gets its own copy,
// and may modify it.
func readJSONFile(cmd *cobra.Command, filename string) (*value.Vector, error) {
	ctx := dlog.WithField(cmd.Context(), "vecctl.read-json-file", filename)
	cache := getGlobalFlags(ctx).files
	if vec, ok := cache.Get(filename); ok {
		dlog.Debugf(ctx, "re-using already-read %q", filename)
		return vec.Dup(), nil
	}

	var buf *runeScanner
	if filename == "-" {
		buf = newRuneScanner(ctx, io.NopCloser(cmd.InOrStdin()), -1)
	} else {
		fh, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		fi, err := fh.Stat()
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		buf = newRuneScanner(ctx, fh, fi.Size())
	}
	defer func() {
		_ = buf.Close()
	}()

	dlog.Debugf(ctx, "reading %q...", filename)
	ret, err := value.Decode(buf)
	if err != nil {
		return nil, err
	}
	dlog.Debugf(ctx, "... done reading %q (%v elements)", filename, textui.Humanized(ret.Len()))
	cache.Add(filename, ret)
	return ret.Dup(), nil
}

func writeJSONFile(w io.Writer, obj any, cfg lowmemjson.ReEncoder) (err error) {
	buffer := bufio.NewWriter(w)
	defer func() {
		if _err := buffer.Flush(); err == nil && _err != nil {
			err = _err
		}
	}()
	cfg.Out = buffer
	return lowmemjson.Encode(&cfg, obj)
}

// writeResult writes a result vector to the command's stdout, honoring
// the --pretty and --inspect flags.
func writeResult(cmd *cobra.Command, result *value.Vector) error {
	flags := getGlobalFlags(cmd.Context())
	out := cmd.OutOrStdout()
	if flags.inspect {
		_, err := io.WriteString(out, result.Inspect(value.Inspect)+"\n")
		return err
	}
	cfg := lowmemjson.ReEncoder{
		ForceTrailingNewlines: true,
	}
	if flags.pretty {
		cfg.Indent = "\t"
	}
	return writeJSONFile(out, value.Array{V: result}, cfg)
}

// parseIntArg parses a positional argument as a JSON value and
// converts it to an int.
func parseIntArg(arg string) (int, error) {
	var raw any
	dec := lowmemjson.NewDecoder(strings.NewReader(arg))
	if err := dec.DecodeThenEOF(&raw); err != nil {
		return 0, err
	}
	if f, ok := raw.(float64); ok {
		// Keep the exact text, so that large integers aren't
		// rounded through float64.
		raw = json.Number(strings.TrimSpace(arg))
		if _, err := raw.(json.Number).Int64(); err != nil {
			raw = f
		}
	}
	return vector.CoerceInt(raw)
}
