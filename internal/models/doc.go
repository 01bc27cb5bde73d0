// Package models defines the domain entities shared across the damx client.
//
// The package contains Data Transfer Objects only:
//   - [MediaItem] : A single catalog asset as returned by GET /api/media
//   - [ItemID] : The stable identifier keying favorites/downloads membership
//   - [UserProfile] : The authenticated user's display profile
//
// The catalog is treated as an immutable ordered sequence between refreshes;
// all derived ordering is computed by the catalog package, never stored here.
package models
