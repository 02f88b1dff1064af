// Package header provides the tooling for dealing with email message headers.
// A Header keeps its fields in the order they appeared, holds repeated fields
// together as a field.Multi value and looks fields up without regard to case.
//
// Beyond plain Get and Set, there are typed getters for the fields a mail
// reader cares about: dates, address lists and the parameterized
// Content-Type and Content-Disposition fields. These try hard to return
// something useful for the malformed headers found in real mail.
//
// The Parser type builds a header one line at a time and Parse() reads a
// complete header block.
package header
