// Package eml reads and writes email messages in the EML format: RFC 5322
// headers followed by a MIME body.
//
// Reading happens in two steps. First, message.Parse breaks the text into a
// tree of parts, following multipart boundaries as deep as they go. The parser
// is lenient with the sort of mail found in the wild and keeps bodies exactly
// as found. Then Read walks that tree and flattens it into an Email: the
// decoded text and HTML bodies, the attachments, the parsed address headers,
// the decoded Subject, and the Date. ReadString does both at once.
//
// Build goes the other way, writing an Email back out as a multipart message
// with CRLF line breaks. Given a header and a text body, reading what Build
// writes gives back the same Email, apart from the Content-Type Build adds.
//
// The lower level pieces live in the packages under message:
//
//   - message/header and message/header/field hold header fields and decode
//     RFC 2047 encoded words.
//   - message/header/param parses parameterized values like Content-Type.
//   - message/address parses and formats address lists.
//   - message/transfer decodes and encodes Content-Transfer-Encodings.
//   - message/charset converts between character sets and UTF-8.
//   - message/walk and message/walker traverse a parsed tree.
//
// None of this keeps any state between calls. Diagnostics go to a
// zerolog.Logger passed in through the options, and nothing is logged unless
// one is given.
package eml
