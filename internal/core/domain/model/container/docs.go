// Package container provides the Container aggregate: the top-level
// consolidation unit carrying boxes on the ocean or air leg. A container
// moves New -> Dispatched -> Received and never regresses; receiving is
// gated by the receiving command so it cannot complete while a member box is
// still open.
package container
