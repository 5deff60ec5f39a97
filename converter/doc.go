// Package converter re-encodes a weights file in another format, optionally
// translating its IDs to a feature-level label column on the way.
//
// A conversion is read → remap → write:
//
//   - the source codec is chosen by extension and its header is inspected
//     before anything is written;
//   - an optional (Keys, Labels) pair is turned into an idindex resolver and
//     handed to the reader, so unresolved IDs follow the codec's strict or
//     adjust rules;
//   - the target is written through the codec's temp-file path.
//
// When the formats match and no remap or ID-field override is requested the
// file is copied byte for byte instead.
package converter
