// Package file provides the TOML configuration store.
//
// Keys use dot notation ("ocr.batch_size"). On disk they are written as
// nested tables so the file stays readable:
//
//	[ocr]
//	batch_size = 1000
package file
