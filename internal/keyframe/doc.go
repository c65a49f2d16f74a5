// Package keyframe parses keyframe files and plays them back as per-frame
// sizes.
//
// A keyframe file has one record per line:
//
//	time, widthExpr, heightExpr[, mode]
//
// time is "seconds" or "seconds.frames" (":" and "-" also separate the
// parts). Width and height are integer arithmetic over + - * /, parentheses,
// original (the source dimension), and last, lastwidth, lastheight (the
// previous record's values). mode is linear (default) or instant.
package keyframe
