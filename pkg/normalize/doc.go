// Package normalize reduces unpredictably shaped roadmap documents to an
// ordered list of canonical [Module] records.
//
// Generated roadmaps arrive as a flat array, under "phases",
// "roadmap.phases", "learning_path", "roadmap.learning_path" or "modules",
// as a raw-text escape field when generation failed, or buried somewhere
// else entirely. Each shape is handled by a named probe; probes are tried in
// a fixed order and the first match wins:
//
//  1. root-array: the document itself is an array
//  2. fixed key paths, first non-empty array wins
//  3. raw-text: a raw text field becomes one diagnostic module with an excerpt
//  4. deep-search: first key (document order, depth first) holding a non-empty array
//
// Entry fields are aliased onto the canonical shape: skill|title|name become
// Title, obj|description|content become Description. Missing fields get
// placeholder text. Nothing here returns an error.
//
// Deep search is a heuristic of last resort and may pick an unrelated list
// such as tags. It takes the first non-empty array in document order. When
// another candidate sits at the same depth or shallower, the [Result] is
// flagged Ambiguous and lists them, so callers can report it.
package normalize
