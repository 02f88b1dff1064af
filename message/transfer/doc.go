// Package transfer handles the Content-Transfer-Encoding of message bodies.
//
// Two levels are provided. The streaming level, built around the Transcodings
// table, wraps an io.Writer or io.Reader so that quoted-printable and base64
// are applied or removed on the fly; every other encoding leaves the bytes
// alone. The content level, DecodeContent, takes the literal body of a part
// together with its encoding and charset and returns a Content that is either
// UTF-8 text or binary data, recovering as well as it can from broken input.
package transfer
