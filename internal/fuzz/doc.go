// Package fuzztests houses Go fuzz harnesses for the snapshot boundary:
// arbitrary bytes go through the snapshot decoder and, when they decode, the
// full check. The goal is to guard against panics on malformed trees.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
