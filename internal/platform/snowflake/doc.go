// Package snowflake issues time ordered, 64 bit artifact identifiers.
//
// An id packs, from the most significant bit down:
//
//	1 bit   always zero, so ids stay positive as int64
//	41 bits milliseconds since the deployment epoch
//	5 bits  site id
//	5 bits  worker id
//	12 bits per millisecond sequence
//
// A Generator is an explicitly constructed value. Two generators with
// distinct (site, worker) coordinates never produce the same id, and one
// generator produces strictly increasing ids in call order. The epoch must
// never change for a deployment, otherwise ids issued after a restart can
// collide with ids issued before it.
package snowflake
