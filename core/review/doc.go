// Package review turns the free-text output of a multi-agent abstract
// review into a validated, fixed-shape record. The input is adversarial:
// language models label sections inconsistently, reorder them, invent
// score key names, and wrap everything in markdown. The pipeline is three
// declarative passes over that text:
//
//   - [Segment] locates the four expected section headers and slices the
//     text into spans, independent of section order.
//   - [Extract] pulls raw fields out of each span: bullet comments, a
//     strict JSON score object, the corrected abstract, the summary.
//   - [Normalize] cleans, reconciles, and back-fills every field so the
//     resulting [Record] always satisfies its schema, no matter how
//     little of the input survived the earlier passes.
//
// All passes are pure functions over their inputs; running the pipeline
// twice on the same text yields byte-identical records. Tuning knobs
// (comment caps, word budgets, off-topic keywords, score defaults) live
// in [Config].
package review
