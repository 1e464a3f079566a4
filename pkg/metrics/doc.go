// Package metrics computes structural distances between two DAGs over the
// same node set: the three adjustment identification distances (parent,
// ancestor, optimal), the structural intervention distance, and the
// structural Hamming distance.
//
// The adjustment distances all run the same verifier loop: for every
// ordered treatment-effect pair, read a candidate adjustment set off the
// guess graph under the policy, then check it against the truth graph. A
// pair counts as one mistake when the guess claims y cannot be an effect of
// t but the truth disagrees, or when the claimed adjustment set is not
// valid in the truth. Treatments are independent, so the loop fans out
// across a bounded set of workers that write disjoint slots of a shared
// per-treatment tally.
//
// Distances are returned both as a raw mistake count and normalized by the
// number of compared pairs, so results are comparable across graph sizes.
package metrics
