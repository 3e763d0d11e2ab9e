// cmd/holdsim/trace.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"io"

	"github.com/fmgs/lnav/math"
	"github.com/fmgs/lnav/nav"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// TraceRecord is the state of the aircraft and its guidance for a single
// simulation tick.
type TraceRecord struct {
	Tick         int                    `msgpack:"tick"`
	Leg          string                 `msgpack:"leg"`
	Phase        string                 `msgpack:"phase,omitempty"`
	Position     math.Point2LL          `msgpack:"pos"`
	Track        float32                `msgpack:"track"`
	Bank         float32                `msgpack:"bank"`
	BankCommand  float32                `msgpack:"bank_cmd"`
	Altitude     float32                `msgpack:"alt,omitempty"`
	Guidance     nav.GuidanceParameters `msgpack:"guidance"`
	DistanceToGo float32                `msgpack:"dtg"`
}

// TraceWriter writes a zstd-compressed stream of msgpack-encoded
// TraceRecords.
type TraceWriter struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder
	N   int
}

func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, err
	}
	return &TraceWriter{zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

func (tw *TraceWriter) Write(rec TraceRecord) error {
	if err := tw.enc.Encode(rec); err != nil {
		return err
	}
	tw.N++
	return nil
}

// Close flushes the compressed stream; it does not close the underlying
// writer.
func (tw *TraceWriter) Close() error {
	return tw.zw.Close()
}

func ReadTrace(r io.Reader) ([]TraceRecord, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var recs []TraceRecord
	dec := msgpack.NewDecoder(zr)
	for {
		var rec TraceRecord
		if err := dec.Decode(&rec); errors.Is(err, io.EOF) {
			return recs, nil
		} else if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
