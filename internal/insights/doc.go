// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package insights derives catalog-level structure directly from catalog
records, independently of the entity graph.

# Analyses

  - ThematicClusters and TemporalClusters group works sharing a tag value.
  - Bridges and TemporalBridges surface pairwise connections that cut across
    taxonomies, or persist across different literary eras.
  - Velocity measures how quickly each tag is being read over a trailing
    window and whether that pace is accelerating or slowing.
  - Influence ranks, for every author, the other authors whose works overlap
    most with theirs.
  - Evolution follows each conceptual theme through the canonical era
    sequence.

All analyses are pure functions of their input. Missing tag lists count as
empty and records without an id are ignored, so malformed input shrinks the
output rather than failing.

# Cost

Bridges and TemporalBridges compare every pair of works and are quadratic in
catalog size. They are meant for personal catalogs of a few hundred works.
*/
package insights
