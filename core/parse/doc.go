// Package parse recovers structured data from raw LLM replies that were
// supposed to be JSON. Language models frequently wrap the object in
// narrative prose or markdown code fences, quote numbers, or emit
// almost-JSON with trailing commas and single quotes. The package applies
// a layered recovery strategy — candidate extraction, strict
// unmarshaling, then automatic JSON repair — before giving up with a
// clear error.
//
// This leniency is intentionally confined to direct agent replies (for
// example a checklister agent asked for a bare score object). The
// section-based report extractor in core/review stays strict: a
// malformed scores section there must fall through to the schema
// defaults, never be repaired into something the agent did not say.
package parse
