// Package report renders scan results.
//
// Two formats are supported:
//
//   - json: an indented array of {"ip", "gateway", "mac"} objects, "[]" when
//     nothing was found
//   - table: a bordered terminal table for interactive use
//
// Both formats sort detections by address so repeated scans of the same
// network produce the same document.
package report
