// Package parser reads a timetabling problem file section by section and
// folds the accepted lines into a model.Problem.
//
// The dispatcher and the active section handler share one forward cursor
// over the input. A handler returns as soon as it sees the next section
// header, leaving that line for the dispatcher. What happens to a malformed
// line is decided by Options.Policy: PolicyAbort stops at the first one,
// PolicyCollect records it and keeps reading.
package parser
