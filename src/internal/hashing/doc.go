// Package hashing computes MD5 revisions of route files.
//
// A revision identifies one exact byte content of a route file. The HTTP API
// hands it out as an ETag and compares it against If-Match before rewriting
// the file, so a client cannot silently overwrite changes it has not seen.
//
//	proxy := hashing.NewMD5ReaderProxy(f)
//	records, err := routes.ParseAll(proxy, scanner)
//	rev := proxy.GetChecksum()
//
// Reading through the proxy lets the parser and the checksum share a single
// pass over the file.
package hashing
