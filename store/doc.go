// Package store keeps an SQLite index of decoded IGES files.
//
// Each indexed file records its Global section parameters and one row per
// directory entry, so entities can be queried by type across many files:
//
//	s, err := store.Open("")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	id, err := s.SaveDocument(ctx, "bracket.igs", doc)
//	lines, err := s.EntriesByType(ctx, id, 110)
//
// Indexing a path again replaces everything stored for it.
package store
