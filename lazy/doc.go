/*
Package lazy implements a binary search tree with lazy deletion.

Erasing an element only tags its node as erased. The node keeps its place
in the tree (and keeps taking part in ordering and search) until Clean
runs a compaction pass over the whole tree. Re-inserting an erased value
revives the existing node instead of allocating a new one.

The tree is not balanced. Height depends on insertion order and grows with
every stale node until the next compaction.

## Terminology

live: a node whose erased flag is false. Size counts live nodes only.

stale: a node tagged erased but not yet reclaimed.

compaction: a single pre-order pass. An erased node first tries to take
the smallest live value of its right subtree (or the largest live value
of its left subtree), tagging the donor erased. Children are then
compacted, and a node that is still erased is unlinked from its parent.

## Concurrency

Tree is not safe for concurrent use. Locked wraps a Tree with a single
mutex, and Compactor runs periodic compaction against a Locked tree.
*/
package lazy
