// Package models defines the domain entities shared by the ytsheet packages.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects: lightweight structs mapped from YouTube Data API responses
//   - [Playlist] : playlist metadata
//   - [PlaylistPage] : one page of [PlaylistEntry] values plus the continuation token
//   - [Video] : public metadata of a single video
//   - [VideoRecord] : one spreadsheet row, built from a [Video]
//
// 2. Persistent Entities: rows in the export history database
//   - [ExportRun] : a spreadsheet written by the export command
//
// Persistent entities implement [Model]; [Repository] describes the storage operations for them.
package models
