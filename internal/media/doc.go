// Package media defines the data model shared by the extraction and
// streaming paths.
//
// Extractor output is untrusted: every field of [RawFormat] and [Info] is
// optional, and the lenient [OptFloat] and [Text] types decode malformed
// values as absent instead of failing the whole document. [Rendition] is the
// canonical, presentable form produced by the rendition package.
package media
