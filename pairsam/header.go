// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import (
	"bufio"
	"bytes"
	"io"
)

// ReadHeader consumes header lines from r until the first non-header
// line, which it returns unconsumed (as firstBody) for the caller to
// feed into the grouper. A line is a header line if its first
// non-empty character is '@', optionally preceded by commentChar (0
// means no comment prefix is expected). Returned header lines have any
// comment prefix stripped.
func ReadHeader(r *bufio.Reader, commentChar byte) (lines []string, firstBody []byte, err error) {
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) == 0 {
			if rerr == io.EOF {
				return lines, nil, nil
			}
			return lines, nil, rerr
		}
		trimmed := bytes.TrimRight(line, "\r\n")
		body := trimmed
		if commentChar != 0 && len(body) > 0 && body[0] == commentChar {
			body = body[1:]
		}
		if len(body) > 0 && body[0] == '@' {
			lines = append(lines, string(body))
			if rerr == io.EOF {
				return lines, nil, nil
			}
			continue
		}
		if rerr == io.EOF {
			return lines, trimmed, nil
		}
		return lines, trimmed, rerr
	}
}

// WriteHeader writes lines to w, one per line terminated by '\n', each
// prefixed by commentChar if it is non-zero.
func WriteHeader(w io.Writer, lines []string, commentChar byte) error {
	for _, l := range lines {
		if commentChar != 0 {
			if _, err := w.Write([]byte{commentChar}); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, l); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
