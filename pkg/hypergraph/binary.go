package hypergraph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

// Binary snapshot format for a coarsened Hypergraph, letting a pipeline
// persist its output between stages: magic bytes, a fixed header,
// zero-copy unsafe.Slice I/O for the bulk arrays, a CRC32 trailer.
const (
	magicBytes = "HGRCOARS"
	version    = uint32(1)
	maxNodes   = 100_000_000
	maxEdges   = 100_000_000
)

type fileHeader struct {
	Magic       [8]byte
	Version     uint32
	NumNodes    uint32
	NumEdges    uint32
	IncLen      uint32
	CurrentHN   int64
	CurrentPins int64
	CurrentHE   int64
}

// WriteBinary serializes h to path, writing to a temp file and renaming
// into place so readers never observe a partial file.
func WriteBinary(path string, h *Hypergraph) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version:     version,
		NumNodes:    h.initialNumNodes,
		NumEdges:    h.initialNumEdges,
		IncLen:      uint32(len(h.IncidenceArray)),
		CurrentHN:   h.CurrentNumHypernodes(),
		CurrentPins: h.CurrentNumPins(),
		CurrentHE:   h.CurrentNumHyperedges(),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	writers := []func() error{
		func() error { return writeUint32Slice(cw, h.IncidenceArray) },
		func() error { return writeUint32Slice(cw, h.heFirstEntry) },
		func() error { return writeUint32Slice(cw, h.heFirstInvalid) },
		func() error { return writeUint32Slice(cw, h.heWeight) },
		func() error { return writeInt32Slice(cw, h.heEnabled) },
		func() error { return writeUint64Slice(cw, h.heHash) },
		func() error { return writeUint32Slice(cw, h.hnWeight) },
		func() error { return writeBoolSlice(cw, h.hnEnabled) },
		func() error { return writeInt32Slice(cw, h.hnCommunity) },
	}
	for _, wr := range writers {
		if err := wr(); err != nil {
			return fmt.Errorf("write body: %w", err)
		}
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// ReadBinary deserializes a Hypergraph previously written by WriteBinary.
// Per-hypernode incident-edge lists are not persisted — they are derived
// state, rebuilt via RebuildIncidentEdges before ReadBinary returns.
func ReadBinary(path string) (*Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes || hdr.NumEdges > maxEdges {
		return nil, fmt.Errorf("size %d/%d exceeds limit", hdr.NumNodes, hdr.NumEdges)
	}

	h := New(hdr.NumNodes, hdr.NumEdges)
	if h.IncidenceArray, err = readUint32Slice(cr, int(hdr.IncLen)); err != nil {
		return nil, fmt.Errorf("read IncidenceArray: %w", err)
	}
	if h.heFirstEntry, err = readUint32Slice(cr, int(hdr.NumEdges)+1); err != nil {
		return nil, fmt.Errorf("read heFirstEntry: %w", err)
	}
	if h.heFirstInvalid, err = readUint32Slice(cr, int(hdr.NumEdges)); err != nil {
		return nil, fmt.Errorf("read heFirstInvalid: %w", err)
	}
	if h.heWeight, err = readUint32Slice(cr, int(hdr.NumEdges)); err != nil {
		return nil, fmt.Errorf("read heWeight: %w", err)
	}
	if h.heEnabled, err = readInt32Slice(cr, int(hdr.NumEdges)); err != nil {
		return nil, fmt.Errorf("read heEnabled: %w", err)
	}
	if h.heHash, err = readUint64Slice(cr, int(hdr.NumEdges)); err != nil {
		return nil, fmt.Errorf("read heHash: %w", err)
	}
	if h.hnWeight, err = readUint32Slice(cr, int(hdr.NumNodes)); err != nil {
		return nil, fmt.Errorf("read hnWeight: %w", err)
	}
	if h.hnEnabled, err = readBoolSlice(cr, int(hdr.NumNodes)); err != nil {
		return nil, fmt.Errorf("read hnEnabled: %w", err)
	}
	if h.hnCommunity, err = readInt32Slice(cr, int(hdr.NumNodes)); err != nil {
		return nil, fmt.Errorf("read hnCommunity: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	h.SetCurrentNumHypernodes(hdr.CurrentHN)
	h.SetCurrentNumPins(hdr.CurrentPins)
	h.SetCurrentNumHyperedges(hdr.CurrentHE)
	h.RebuildIncidentEdges()

	return h, nil
}

// RebuildIncidentEdges recomputes every hypernode's incident-edge list from
// the current incidence array. Needed after ReadBinary, since the list is
// derived state that isn't persisted.
func (h *Hypergraph) RebuildIncidentEdges() {
	h.hnIncidentEdges = make([][]uint32, h.initialNumNodes)
	for e := uint32(0); e < h.initialNumEdges; e++ {
		for _, p := range h.AllPins(e) {
			h.hnIncidentEdges[p] = append(h.hnIncidentEdges[p], e)
		}
	}
}

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt32Slice(w io.Writer, s []int32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeUint64Slice(w io.Writer, s []uint64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func writeBoolSlice(w io.Writer, s []bool) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readInt32Slice(r io.Reader, n int) ([]int32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readUint64Slice(r io.Reader, n int) ([]uint64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readBoolSlice(r io.Reader, n int) ([]bool, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]bool, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
