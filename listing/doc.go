// Package listing streams Records out of a paged listing API.
//
// A run is a chain of lazy pipeline stages:
//
//	PageSource -> Flatten -> LimitCount -> TakeThroughID -> Sink
//
// Records are pulled one at a time. A page is requested only when the
// consumer asks for a Record past the end of the current one, so stopping
// early (by count or by id threshold) never triggers a fetch the output
// does not need. There is no prefetching and at most one request is in
// flight.
//
// Each page entry is classified once when the page is decoded: a record, a
// group of records (flattened one level), or malformed. Reaching a
// malformed entry fails the run with a protocol error after every earlier
// Record has been delivered.
package listing
