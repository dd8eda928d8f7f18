// Package catalog describes the operation types a planner knows about.
//
// Each operation type declares the category of output it produces and the
// abstract data roles it can supply ("provides") or needs supplied
// ("requires"). The dependency analyzer never inspects operations themselves;
// everything it knows about an operation comes from its catalog entry.
//
// A Catalog is an explicit object owned by a planner. It starts from the
// built-in default table, merges caller overrides on top, and accepts further
// registrations before planning begins. Registering while a planning call is
// in flight is not supported.
package catalog
