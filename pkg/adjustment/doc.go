// Package adjustment decides whether candidate covariate sets validly adjust
// for confounding between a treatment node and an effect node in a DAG.
//
// The package has two layers. The lower layer is a generalized reachability
// search driven by a small closed rule table (parents, ancestors,
// descendants, proper ancestors): one stack-based traversal that classifies
// each step by the edge it arrived over and the edge it would leave over.
// The upper layer is the walk-status verifier: for a treatment t and a
// candidate set Z it walks all t-rooted walks, tracking whether each walk is
// causal or non-causal and whether Z has blocked it, and returns in one pass
// the descendant set of t together with the set of effects y for which Z is
// NOT a valid adjustment set relative to (t, y). Walk-based (rather than
// path-based) bookkeeping is what makes conditioning on descendants of
// causal nodes register as invalid without a separate forbidden-set check.
//
// The three adjustment-set construction policies (parent, ancestor, optimal)
// are a closed enumeration dispatched through ForPair, so a missing case is
// a compile-time error rather than a runtime surprise.
package adjustment
