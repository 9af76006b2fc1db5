package hashing

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/lukassup/route-ctl/src/internal/utils"
)

// EmptyRevision is the revision of a route file that does not exist yet. It
// equals the MD5 of zero bytes so a missing and an empty file compare equal.
const EmptyRevision = "d41d8cd98f00b204e9800998ecf8427e"

// FileRevision returns the MD5 checksum of the file at path. A missing file
// has EmptyRevision.
func FileRevision(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return EmptyRevision, nil
		}
		return "", err
	}
	defer utils.CloseOrWarn(f)

	proxy := NewMD5ReaderProxy(f)
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		return "", err
	}
	return proxy.GetChecksum(), nil
}
