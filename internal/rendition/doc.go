// Package rendition turns raw extractor format descriptors into a ranked,
// deduplicated list of canonical renditions.
//
// The pipeline has three pure stages:
//   - [EstimateSize]: best-effort byte size from reported sizes, bitrates, or
//     an average-bitrate-by-height table
//   - [Normalize]: one [media.RawFormat] to one [media.Rendition]
//   - [Rank]: source URL dedup, best-first sort, then one entry per
//     (quality, codec, transport)
//
// None of the stages return errors. Missing or malformed inputs degrade to
// "Unknown" labels and absent sizes.
package rendition
