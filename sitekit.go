// Package sitekit provides the build and maintenance tooling for a small
// brochure website. It snapshots the old live site, rebuilds its pages as
// framework page components, rewrites business facts across the source
// tree, manages the site database, and drives the hosting provider's API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/, vercel/).
package sitekit
