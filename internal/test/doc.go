// Package test defines the runnable test instances a job executes and the
// resolver that maps one parameter set to exactly one instance.
//
// Resolution is a three-branch policy over the identifier's prefix (the part
// before the first dot). An existing filesystem path always wins and yields a
// path-based instance. Otherwise the prefix is looked up under the test root:
// a directory named after the prefix must contain an executable entry also
// named after the prefix. When that discovery fails at any step the resolver
// falls back to a missing-test instance, which satisfies the run contract but
// reports an error status instead of raising during construction.
package test
