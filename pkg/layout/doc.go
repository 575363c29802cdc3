// Package layout places a roadmap graph on a 2D plane.
//
// The layout is layered: nodes are grouped into horizontal ranks by depth,
// with the learner root at the bottom and the deepest rank at the top. It is
// built from three small pure steps that can be used on their own:
//
//   - [AssignRanks] groups node IDs by depth in visit order
//   - [OrderRanks] reorders ranks with barycenter sweeps to cut crossings
//   - [Jitter] offsets each node by a hash of its ID
//
// [Compute] composes them, spaces ranks and siblings by [Config], and returns
// the positions together with a padded bounding box.
//
// Jitter makes the graph look hand-placed without a random source, so
// repeated passes over the same graph are pixel-stable.
package layout
