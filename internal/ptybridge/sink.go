// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ptybridge/sink.go
// Summary: Turns raw terminal output into plain lines.

package ptybridge

import "io"

type sinkState int

const (
	plain sinkState = iota
	escape
	csi
	osc
	oscEscape
)

// Sink strips carriage returns, escape sequences and other control bytes
// from terminal output and writes the rest to W. Sequences split across
// writes are handled.
type Sink struct {
	W     io.Writer
	state sinkState
}

// NewSink returns a sink writing to w.
func NewSink(w io.Writer) *Sink { return &Sink{W: w} }

func (s *Sink) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p))
	for _, c := range p {
		switch s.state {
		case escape:
			switch c {
			case '[':
				s.state = csi
			case ']':
				s.state = osc
			default:
				s.state = plain
			}
		case csi:
			if c >= 0x40 && c <= 0x7e {
				s.state = plain
			}
		case osc:
			switch c {
			case 0x07:
				s.state = plain
			case 0x1b:
				s.state = oscEscape
			}
		case oscEscape:
			s.state = plain
			if c != '\\' {
				s.state = osc
			}
		default:
			switch {
			case c == 0x1b:
				s.state = escape
			case c == '\n' || c == '\t':
				out = append(out, c)
			case c < 0x20 || c == 0x7f:
			default:
				out = append(out, c)
			}
		}
	}
	if len(out) > 0 {
		if _, err := s.W.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
