// File: limit.go
// Title: Input Size Limit
// Description: Reader wrapper that fails once more than a fixed number of
//              bytes has been read.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18

package kscope

import (
	"io"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
)

type limitedReader struct {
	r         io.Reader
	limit     int64
	remaining int64
}

func newLimitedReader(r io.Reader, limit int64) *limitedReader {
	return &limitedReader{r: r, limit: limit, remaining: limit}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Input of exactly limit bytes is fine; only fail if more follows.
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n == 0 {
			return 0, err
		}
		return 0, mdwerror.Newf("input exceeds maximum size of %d bytes", l.limit).
			WithCode(mdwerror.CodeInvalidInput).
			WithDetail("max_input_bytes", l.limit)
	}

	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
