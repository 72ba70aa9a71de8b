// Package codec converts between Go UTF-8 strings and the unit sequences
// and byte serializations unitext accepts.
//
// Two layers are provided:
//
//   - Unit codecs (DecodeUTF8, DecodeUTF16, DecodeUTF32 and the matching
//     encoders) work on in-memory unit slices and are strict: any unpaired
//     surrogate, truncated sequence or out-of-range value is rejected with
//     a *SequenceError.
//   - Charsets (Lookup, Charset.Decode, Charset.Encode) work on byte
//     serializations through golang.org/x/text and are verified by
//     round-trip, so decoders that substitute U+FFFD are still strict.
//
// DetectEncoding sniffs byte order marks and UTF-8 validity for callers
// that do not know the charset of their input.
package codec
