// Package edit keeps annotation coordinates correct across sequence edits.
//
// An edit is either an insertion of text at a fence post or a replacement of
// a range with new text (deletion is a replacement with empty text). The
// adjustment functions are pure: they take a [interval.Range] and return the
// adjusted value, leaving it to the owner of the ranges to swap new values in.
//
// # Insert
//
// Inserting n bases at p moves every coordinate strictly greater than p by n.
// A range starting exactly at p grows, a range ending exactly at p does not:
//
//	edit.AdjustInsert(interval.MustNew(10, 50, interval.Plus), 10, 3) // 10..53
//	edit.AdjustInsert(interval.MustNew(10, 50, interval.Plus), 50, 3) // 10..50
//
// # Replace
//
// Replacing [s,e) with L bases falls into exactly one case, tested in order:
//
//	before     end <= s                  unchanged
//	spanning   start <= s && end >= e    end grows by the net change
//	after      start >= e                shifted by the net change
//	contained  start >= s && end <= e    collapses to a cursor at s
//	left edge  start < s < end < e       truncated to end at s
//	right edge s <= start < e < end      starts after the new text
//
// A right-edge range moves its start to s+L even for a pure deletion.
package edit
