// Package invoice locates the client name and issue date in text extracted
// from AFIP invoices.
//
// Everything here is a pure function of its input text. Label variants are
// tried in a fixed priority order so that the same text always yields the
// same candidate.
package invoice
