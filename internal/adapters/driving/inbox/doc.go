// Package inbox harvests PDFs dropped into a watched folder.
//
// Each new PDF becomes a library record titled after its file name. The
// file is attached, which stores it and indexes its text, and then moved
// to the processed/ subfolder. Files are handled once their size stops
// changing, so partially copied downloads are not picked up.
package inbox
