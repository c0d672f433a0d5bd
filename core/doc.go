// Package core provides low-level IGES record primitives.
//
// An IGES file is a sequence of 80-column records. Columns 1-72 hold data,
// column 73 names the section (S, G, D, P or T) and columns 74-80 hold the
// record's sequence number within its section.
//
// # Line Classification
//
// [Classify] splits one physical line into a [RawRecord]. The [Scanner] type
// applies it to a stream, and [ReadRecords] collects a whole file into a
// [Records] value bucketed by section:
//
//	recs, err := core.ReadRecords(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(recs.Directory) / 2, "entities")
//
// # Free-Format Parameters
//
// The Global and Parameter Data sections carry free-format parameter lists
// separated by a parameter delimiter (default ',') and ended by a record
// delimiter (default ';'). The [Tokenizer] type splits such text and
// understands Hollerith strings (5HHELLO), which may contain delimiters.
//
// # Errors
//
// Every failure is an [*Error] carrying a [Kind] and the offending record.
// Use errors.Is with [ErrFormat], [ErrStructural], [ErrReference] or
// [ErrParse] to test the kind.
package core
