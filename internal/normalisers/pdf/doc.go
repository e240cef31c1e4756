// Package pdf extracts the text layer of PDF invoices.
//
// Three backends are available and combined by Chain, which returns the
// first non-empty text:
//
//   - pdftotext: the poppler command line tool, run through a CommandRunner.
//   - textlayer: github.com/ledongthuc/pdf, text grouped by rows.
//   - contentstream: github.com/pdfcpu/pdfcpu page content streams.
//
// Image-only documents produce empty text; no OCR is attempted.
package pdf
