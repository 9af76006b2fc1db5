package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// ChecksumProvider is implemented by anything that can report an MD5 checksum.
type ChecksumProvider interface {
	GetChecksum() string
}

// ChecksumReaderProxy computes the MD5 checksum of everything read through it.
type ChecksumReaderProxy struct {
	reader   io.Reader
	checksum hash.Hash
	size     int64
}

// NewMD5ReaderProxy wraps reader.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads from the wrapped reader and feeds the bytes into the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		// hash.Hash.Write never returns an error.
		p.checksum.Write(buf[:n])
		p.size += int64(n)
	}
	return n, err
}

// Size returns the number of bytes read so far.
func (p *ChecksumReaderProxy) Size() int64 {
	return p.size
}

// GetChecksum returns the hex MD5 of the bytes read so far.
func (p *ChecksumReaderProxy) GetChecksum() string {
	return hex.EncodeToString(p.checksum.Sum(nil))
}
