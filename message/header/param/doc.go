// Package param parses and formats the values of parameterized header fields
// such as Content-Type and Content-Disposition: a primary value followed by
// "; name=value" pairs.
//
// Parse follows RFC 2045 and RFC 2231 through mime.ParseMediaType. Mail in the
// wild often breaks those rules, so ParseLenient splits on semicolons itself
// when Parse gives up and never fails.
package param
