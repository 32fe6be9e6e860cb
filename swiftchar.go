// # SwiftChar: Chunked Character Decoding, Segmenting and CSV Parsing for Go
//
// SwiftChar decodes UTF-8, UTF-16BE and UTF-16LE byte streams into characters
// while pulling the source in bounded chunks, and builds a delimiter segmenter
// and an RFC 4180 style CSV parser on top of the decoded stream.
//
// # Features
//
// - Reader with a fixed BufferSize; characters split across chunks are completed by the next pull.
// - Strict decoding: overlong UTF-8, surrogate halves and broken surrogate pairs yield ErrCorruptedData.
// - A stream that ends inside a multi-byte character yields ErrUnexpectedEOF instead of dropping it.
// - Callback consumers returning false stop the read; Chars and Segments expose the same loops as range-over-func sequences.
// - CSVParser with configurable field and line delimiters; "" escapes a quote and a quote may only open a field.
// - Writer producing CSV the parser reads back, in any supported encoding.
// - Positioned errors via DecodeError and ParseError.
package swiftchar
