// Package model provides the in-memory representation of a decoded IGES file.
//
// All decoding operations ultimately produce these types, making them the
// primary API for consuming IGES content.
//
// # Document Structure
//
// The [Document] type holds the decoded sections of one file:
//
//   - Start - the free-text prologue
//   - [GlobalSection] - the 26 named Global parameters
//   - [Entries] - directory entries keyed by first-line sequence number
//   - [Terminate] - per-section line counts
//
// # Global Parameters
//
// Each [GlobalParameter] has a declared [FieldType] and a [Value] that is
// either unset or holds the coerced value. Parameters are looked up by name
// using the exported name constants:
//
//	units := doc.Global.UnitsName()
//	scale, ok := doc.Global.Float(model.ModelSpaceScale)
//
// # Directory Entries
//
// A [DirectoryEntry] keeps the raw 8-column text of its fields, apart from the
// integer sequence number and parameter data pointer, plus ParamStr, the
// reassembled parameter data. Helpers decode the common fields:
//
//   - EntityType, EntityName - entity type number and its name
//   - Status - the four status flags
//   - LineFontName - resolved through a [LineFontTable]
//   - Parameters - ParamStr split on the file's delimiters
package model
