// Package reader provides high-level IGES file decoding.
//
// This package orchestrates the lower-level core package: records are
// classified by section, then the Global, Directory Entry and Parameter Data
// sections are decoded independently and finally linked together.
//
// # Decoding a Stream
//
// [Parse] is the simplest entry point:
//
//	global, entries, err := reader.Parse(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(global.UnitsName(), entries.Len())
//
// # Opening Files
//
// Use [Open] to read a file from disk. Gzip-compressed files are detected
// and decompressed transparently:
//
//	r, err := reader.Open("part.igs.gz", reader.WithEncoding("latin1"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	doc, err := r.Parse()
//
// # Errors and Warnings
//
// A malformed file is rejected as a whole. Errors wrap a *core.Error naming
// the kind and the offending record; test them with errors.Is against
// core.ErrFormat, core.ErrStructural, core.ErrReference or core.ErrParse.
//
// Parameter data that points at a missing directory entry is an error unless
// [WithLenientReferences] is given, in which case it is dropped and reported
// through [Reader.Warnings]. Terminate record problems are always warnings.
package reader
