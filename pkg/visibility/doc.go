// Package visibility reduces a roadmap graph to what a viewer shows given
// per-node collapse flags.
//
// Collapse state is a plain value ([CollapseState]) passed into [Compute];
// the package never stores it. Hiding is monotonic: collapsing a node hides
// its entire descendant subtree, never a part of it.
package visibility
