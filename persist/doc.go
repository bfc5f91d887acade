// Package persist saves and loads embedding sets as snapshot files.
//
// A snapshot is a self-describing binary frame: a fixed header records the
// format version, the codec that encoded the payload and the compression
// scheme, followed by the compressed payload and a CRC32 checksum. Files
// written with one codec or compression scheme load without configuration.
//
//	err := persist.Save("words.emb", set, persist.WithCompression(persist.CompressionZstd))
//	set, err := persist.Load("words.emb")
package persist
