// Package box provides the Box aggregate: a physical carton consolidating
// multiple orders for one shipment leg. A box moves New -> Packed ->
// [ContainerReceived] -> Received and never regresses; the bracketed state is
// only traversed by boxes assigned to a container and is what prevents a box
// from being received ahead of its container.
package box
