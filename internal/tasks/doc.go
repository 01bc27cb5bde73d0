// Package tasks orchestrates the library's side effects.
//
// [LibraryEngine] wraps the backend service with three operations:
//
//  1. Refresh: fetch the catalog. Each fetch carries a generation number;
//     Apply rejects snapshots older than the newest one already applied, so
//     superseded in-flight fetches cannot overwrite fresher data.
//  2. Download / BulkDownload: fetch item bytes with the session credential,
//     save them locally, and record the item in the downloads set only on
//     success. Bulk runs use a bounded worker pool with a rate limiter and
//     write a manifest.json summary next to the files.
//  3. Upload: multipart submit of file + type, then a delayed catalog
//     refresh once the backend has indexed the asset.
//
// Long-running operations emit [ProgressUpdate] values over a channel;
// sends never block, slow consumers just miss intermediate updates.
package tasks
