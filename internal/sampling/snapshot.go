package sampling

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxSnapshotCount bounds the value count accepted from a snapshot record,
// so a corrupt header cannot drive a huge allocation.
const maxSnapshotCount = 1_000_000

// snapshotHeader is the fixed on-disk record preceding the value array.
// All fields are little-endian.
type snapshotHeader struct {
	Initial    float64
	Final      float64
	Factor     float64
	Spacing    float64
	Oversample int64
	Count      int64
}

// WriteTo writes the Grid as a fixed header followed by the value array.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	hdr := snapshotHeader{
		Initial:    g.Initial,
		Final:      g.Final,
		Factor:     g.Factor,
		Spacing:    g.Spacing,
		Oversample: int64(g.Oversample),
		Count:      int64(len(g.Values)),
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return cw.n, fmt.Errorf("sampling: write snapshot header: %w", err)
	}
	if len(g.Values) > 0 {
		if err := binary.Write(cw, binary.LittleEndian, g.Values); err != nil {
			return cw.n, fmt.Errorf("sampling: write snapshot values: %w", err)
		}
	}
	return cw.n, nil
}

// Read restores a Grid from a snapshot written by WriteTo. The value count
// is validated before any allocation.
func Read(r io.Reader) (*Grid, error) {
	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("sampling: read snapshot header: %w", err)
	}
	if hdr.Count < 0 {
		return nil, fmt.Errorf("%w (%d)", ErrSnapshotCount, hdr.Count)
	}
	if hdr.Count > maxSnapshotCount {
		return nil, fmt.Errorf("%w (%d > %d)", ErrSnapshotTooLarge, hdr.Count, maxSnapshotCount)
	}
	g := &Grid{
		Initial:    hdr.Initial,
		Final:      hdr.Final,
		Factor:     hdr.Factor,
		Spacing:    hdr.Spacing,
		Oversample: int(hdr.Oversample),
		Values:     make([]float64, hdr.Count),
	}
	if hdr.Count > 0 {
		if err := binary.Read(r, binary.LittleEndian, g.Values); err != nil {
			return nil, fmt.Errorf("sampling: read snapshot values: %w", err)
		}
	}
	return g, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
