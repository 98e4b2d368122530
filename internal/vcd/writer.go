// Package vcd writes value-change dump traces.
//
// The output is the plain-text VCD format consumed by standard waveform
// viewers: a header declaring the signal hierarchy, an initial $dumpvars
// block, then timestamped value changes. Only signals whose value changed
// since the previous time step are re-emitted.
package vcd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/roach88/wavesense/internal/dut"
	"github.com/roach88/wavesense/internal/sim"
)

// Identifier codes assigned in declaration order, as viewers expect.
const (
	idClk   = "!"
	idRst   = "\""
	idEn    = "#"
	idCount = "$"
)

// Writer serializes snapshots to a VCD file.
//
// The header carries no wall-clock date so identical runs produce
// byte-identical traces.
type Writer struct {
	f      *os.File
	w      *bufio.Writer
	last   dut.Snapshot
	lastT  sim.Time
	dumped bool
	closed bool
}

// Create opens path for writing and emits the VCD header. A creation
// failure is fatal to the run: no recorder exists until Create succeeds.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	wr := &Writer{f: f, w: bufio.NewWriter(f)}
	if err := wr.writeHeader(); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	return wr, nil
}

func (wr *Writer) writeHeader() error {
	header := "$version wavesense $end\n" +
		"$timescale 1ns $end\n" +
		"$scope module counter $end\n" +
		"$var wire 1 " + idClk + " clk $end\n" +
		"$var wire 1 " + idRst + " rst $end\n" +
		"$var wire 1 " + idEn + " en $end\n" +
		"$var wire 8 " + idCount + " count [7:0] $end\n" +
		"$upscope $end\n" +
		"$enddefinitions $end\n"
	_, err := wr.w.WriteString(header)
	return err
}

// Dump records the snapshot at time t. Time must be strictly greater than
// the previous call's; the first call emits the full $dumpvars block.
func (wr *Writer) Dump(t sim.Time, s dut.Snapshot) error {
	if wr.closed {
		return fmt.Errorf("vcd: dump after close")
	}
	if wr.dumped && t <= wr.lastT {
		return fmt.Errorf("vcd: time %d not after %d", t, wr.lastT)
	}

	fmt.Fprintf(wr.w, "#%d\n", t)

	if !wr.dumped {
		wr.w.WriteString("$dumpvars\n")
		wr.writeScalar(idClk, s.Clk)
		wr.writeScalar(idRst, s.Rst)
		wr.writeScalar(idEn, s.En)
		wr.writeVector(idCount, s.Count)
		wr.w.WriteString("$end\n")
	} else {
		if s.Clk != wr.last.Clk {
			wr.writeScalar(idClk, s.Clk)
		}
		if s.Rst != wr.last.Rst {
			wr.writeScalar(idRst, s.Rst)
		}
		if s.En != wr.last.En {
			wr.writeScalar(idEn, s.En)
		}
		if s.Count != wr.last.Count {
			wr.writeVector(idCount, s.Count)
		}
	}

	wr.last = s
	wr.lastT = t
	wr.dumped = true
	// bufio keeps a sticky write error; Close's Flush surfaces it.
	return nil
}

// Close flushes and closes the trace file. Safe to call once; the harness
// guarantees exactly one call per run.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}
	wr.closed = true
	if err := wr.w.Flush(); err != nil {
		wr.f.Close()
		return fmt.Errorf("flush trace: %w", err)
	}
	if err := wr.f.Close(); err != nil {
		return fmt.Errorf("close trace: %w", err)
	}
	return nil
}

func (wr *Writer) writeScalar(id string, v uint8) {
	fmt.Fprintf(wr.w, "%d%s\n", v, id)
}

func (wr *Writer) writeVector(id string, v uint8) {
	// Leading zeros omitted per VCD convention.
	fmt.Fprintf(wr.w, "b%s %s\n", strconv.FormatUint(uint64(v), 2), id)
}
