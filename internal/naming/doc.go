// Package naming turns a raw client name into a filename-safe token and
// plans the resulting file name.
//
// Case policy: names are always uppercased.
package naming
