// Package filters provides input filters applied before IGES records are
// classified.
//
// # Decompression
//
// IGES files are often distributed gzip-compressed (.igs.gz). Decompress
// sniffs the gzip header and transparently unwraps the stream:
//
//	r, closer, compressed, err := filters.Decompress(f)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
// # Character Sets
//
// The format is nominally ASCII, but Start sections and Hollerith strings
// written by older systems may carry Latin-1 or DOS code page text.
// DecodeReader converts such input to UTF-8:
//
//	r, err := filters.DecodeReader(f, "latin1")
package filters
