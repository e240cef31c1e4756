// Package connectors provides the document sources invoices are read from.
// The filesystem connector lists a folder of PDFs and watches it for new
// arrivals.
package connectors
