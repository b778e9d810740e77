// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package graph builds the entity-relationship graph of a reading catalog.

The graph connects three kinds of entity: books (one per catalog record),
authors and protagonists (both synthesized from the records). Edges are
undirected, carry a score and the reasons that produced it, and are
identified by the sorted pair of entity ids.

# Pipeline

	records -> BuildEntities -> Builder.Build -> NewIndex

BuildEntities normalizes tags and synthesizes author and protagonist
entities. Builder.Build scores book pairs with the Scorer, adds structural
authorship and membership edges, then sorts and caps the result. NewIndex
derives neighbor sets and a pair lookup used for explanations.

# Scoring

Book pairs accumulate points independently:

	same author           50
	shared conceptual     10 per tag, capped at 40
	shared context        15 per non-era tag, capped at 45
	shared era             5, only without shared context tags

Context tags that look like an era ("Golden Age (1938-1950)", "1990s")
feed the era factor instead of the context factor.

A pair is connected when it reaches the minimum score of 10. All weights
live in Config.

# Bucketed Candidate Generation

Snapshots with more than LargeGraphThreshold books skip exhaustive pairwise
scoring. Books are grouped by author and by tag. Every pair inside an author
group is scored, but only the first BucketWindow members of a tag group are
compared. Bucket members keep input order, so a strong pair late in a
popular tag's bucket is only found if another bucket brings it together.

# Concurrency

Every function in this package is pure. Builder, Scorer and Index hold no
mutable state after construction and may be shared between goroutines.
*/
package graph
