// Package ingest streams $MFT record slots from a byte source into the
// mft decoder through a bounded worker pool, grounded on the teacher's
// parser/reader.go PagedReader/FreeList design for the source side and
// on golang.org/x/sync/errgroup for the pool side.
package ingest

import (
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
)

// ErrShortRecord is returned by Next when fewer than recordSize bytes
// remain in the source - the final, truncated slot at the end of a
// capture. The caller still receives the partial bytes; mft.Decode will
// itself reject or flag whatever it cannot make sense of.
var ErrShortRecord = errors.New("ingest: short trailing record")

// Source is a closed set of the byte-supply strategies a Pipeline can
// read $MFT slots from. Implementations are distinguished by an
// unexported marker method rather than left open to arbitrary
// implementations, since the set is fixed. Each one handles its own
// lifecycle in Close (unmap, close the gzip stream, close the reader if
// it is closable); a Pipeline never closes its source.
type Source interface {
	isSource()

	// Next returns the next record's number and raw bytes, in increasing
	// record-number order, or io.EOF once the source is exhausted.
	Next() (recordNumber uint64, data []byte, err error)

	Close() error
}

// RandomAccess is implemented by sources that can also fetch an
// arbitrary record's bytes after the fact - what mft.ResolveExtensions
// needs to follow a $ATTRIBUTE_LIST reference to an extension record
// that may sit anywhere else in the MFT. MmapSource and RawDiskSource
// both sit over addressable storage and implement it; DecompressedSource
// does not, since a gzip stream can only be read forward once.
type RandomAccess interface {
	ReadRecord(recordNumber uint64) ([]byte, error)
}

// MmapSource reads a flat $MFT file (or raw partition image containing
// one) through a memory map, giving every worker goroutine direct,
// zero-copy access to record bytes.
type MmapSource struct {
	file       *os.File
	mapping    mmap.MMap
	recordSize int64
	offset     int64
	next       uint64
}

// OpenMmap maps path read-only and prepares to hand out recordSize-byte
// slots starting at startRecord.
func OpenMmap(path string, recordSize int64, startRecord uint64) (*MmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &MmapSource{
		file:       f,
		mapping:    m,
		recordSize: recordSize,
		offset:     int64(startRecord) * recordSize,
		next:       startRecord,
	}, nil
}

func (s *MmapSource) isSource() {}

func (s *MmapSource) Next() (uint64, []byte, error) {
	if s.offset >= int64(len(s.mapping)) {
		return 0, nil, io.EOF
	}

	end := s.offset + s.recordSize
	var err error
	if end > int64(len(s.mapping)) {
		end = int64(len(s.mapping))
		err = ErrShortRecord
	}

	data := s.mapping[s.offset:end]
	recordNumber := s.next

	s.offset = s.offset + s.recordSize
	s.next++

	return recordNumber, data, err
}

// ReadRecord fetches the record at recordNumber directly from the
// mapping, independent of Next's streaming position.
func (s *MmapSource) ReadRecord(recordNumber uint64) ([]byte, error) {
	start := int64(recordNumber) * s.recordSize
	end := start + s.recordSize
	if start < 0 || end > int64(len(s.mapping)) {
		return nil, io.EOF
	}
	return s.mapping[start:end], nil
}

func (s *MmapSource) Close() error {
	if err := s.mapping.Unmap(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// DecompressedSource reads record slots sequentially out of a gzip
// stream - the shape an $MFT export taken with a compressing collector
// produces. It cannot seek, so ingestion always starts at record 0 and
// proceeds in strict order, which is exactly the order the Pipeline
// needs to preserve anyway.
type DecompressedSource struct {
	file       *os.File
	gz         *gzip.Reader
	recordSize int64
	next       uint64
}

// OpenDecompressed opens a gzip-compressed $MFT export at path.
func OpenDecompressed(path string, recordSize int64) (*DecompressedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &DecompressedSource{file: f, gz: gz, recordSize: recordSize}, nil
}

func (s *DecompressedSource) isSource() {}

func (s *DecompressedSource) Next() (uint64, []byte, error) {
	buf := make([]byte, s.recordSize)
	n, err := io.ReadFull(s.gz, buf)
	switch {
	case err == io.EOF:
		return 0, nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		recordNumber := s.next
		s.next++
		return recordNumber, buf[:n], ErrShortRecord
	case err != nil:
		return 0, nil, err
	}

	recordNumber := s.next
	s.next++
	return recordNumber, buf, nil
}

func (s *DecompressedSource) Close() error {
	if err := s.gz.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// RawDiskSource reads record slots out of an arbitrary io.ReaderAt -
// typically a cluster-run-mapped reader over a live volume device, built
// by a caller outside this module (live-volume raw-disk access is out of
// scope here; only the ReaderAt contract is).
type RawDiskSource struct {
	reader     io.ReaderAt
	recordSize int64
	offset     int64
	next       uint64
	closer     io.Closer
}

// NewRawDiskSource wraps reader, starting at startRecord. If reader also
// implements io.Closer, Close releases it; otherwise Close is a no-op.
func NewRawDiskSource(reader io.ReaderAt, recordSize int64, startRecord uint64) *RawDiskSource {
	closer, _ := reader.(io.Closer)
	return &RawDiskSource{
		reader:     reader,
		recordSize: recordSize,
		offset:     int64(startRecord) * recordSize,
		next:       startRecord,
		closer:     closer,
	}
}

func (s *RawDiskSource) isSource() {}

func (s *RawDiskSource) Next() (uint64, []byte, error) {
	buf := make([]byte, s.recordSize)
	n, err := s.reader.ReadAt(buf, s.offset)
	if n == 0 && err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, err
	}

	recordNumber := s.next
	s.offset += s.recordSize
	s.next++

	if n < len(buf) {
		return recordNumber, buf[:n], ErrShortRecord
	}
	return recordNumber, buf, nil
}

// ReadRecord fetches the record at recordNumber directly from the
// underlying ReaderAt, independent of Next's streaming position.
func (s *RawDiskSource) ReadRecord(recordNumber uint64) ([]byte, error) {
	buf := make([]byte, s.recordSize)
	offset := int64(recordNumber) * s.recordSize
	n, err := s.reader.ReadAt(buf, offset)
	if n < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

func (s *RawDiskSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
