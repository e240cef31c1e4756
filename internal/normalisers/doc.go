// Package normalisers turns source documents into plain text. The pdf
// subpackage holds the text extraction backends and the fallback chain
// that tries them in order.
package normalisers
