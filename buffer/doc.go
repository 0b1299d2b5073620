// Package buffer implements the document model edited by the widget.
//
// Coordinates are 0-based (Row, Col) in runes. Offsets are rune offsets into
// the whole document, counting each '\n' as one rune.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// Undo history is not part of a Buffer. A History records the changes of the
// buffer it is attached to (see Buffer.SetRecorder) and can be swapped
// independently by the host.
package buffer
