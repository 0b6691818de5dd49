/*
Package server implements Darter's task placement and reservation lifecycle
engine.

Frontends register a callback address and submit jobs made of many short
tasks. For each task the placement engine enqueues a reservation on d
candidate workers chosen uniformly at random (power-of-d probing). Workers
pull when they have a free slot; the pull rendezvous claims the oldest
unclaimed reservation in that worker's queue and returns a launch spec, so
the task binds to whichever candidate went idle first (late binding).
Sibling reservations for a claimed task are not canceled; they are detected
as stale and discarded lazily the next time their queue is scanned. Status
messages from workers are routed back to the owning frontend one hop,
best-effort.

Locking is per worker queue. No operation holds more than one queue lock at
a time and nothing here blocks on network I/O; a pull with no claimable
reservation returns empty rather than waiting, and any wait-for-work policy
belongs to the transport layer.
*/
package server
