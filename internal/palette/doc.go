// Package palette extracts dominant colors from an image and renders them as
// a square grid.
//
// # Pipeline
//
// A request flows through four steps:
//
//  1. Extract: the image is reduced to at most N colors. If it has N or fewer
//     distinct colors they are returned exactly. Otherwise the pixels are
//     clustered into exactly N groups and the group centroids are returned.
//  2. Sort (optional): colors are ordered by hue, then mean brightness.
//  3. Render: colors fill a ceil(sqrt(count)) square grid of fixed-size cells
//     on a white canvas, row by row.
//  4. Report: Pipeline.Process packages the image with a status message.
//
// # Clustering
//
// Clustering happens in raw RGB space through the Clusterer interface. The
// default LloydClusterer is a weighted k-means with k-means++ seeding, a
// fixed seed and ten restarts, so the same image always yields the same
// palette. Distinct colors are clustered with their pixel counts as weights,
// which gives the same result as clustering every pixel.
//
// Clustering cost grows with distinct colors times N times iterations and
// there is no internal cancellation. Callers that need bounded latency should
// downscale large images first or run Process under their own timeout.
//
// # Error Handling
//
// Extractors, the sorter and the renderer return errors normally. Pipeline is
// the single boundary that turns every failure, including panics, into a
// Result with an Outcome and a status string. Download reports nothing at all
// on failure and returns nil.
package palette
