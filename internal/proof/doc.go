// Package proof checks natural-logic proofs.
//
// A proof is a list of premises followed by steps. Each step must follow
// from earlier facts (premises and previously justified steps) by one rule
// of the library: some output pattern of the rule matches the step, the
// input patterns match distinct earlier facts under one consistent
// assignment, and the two assignments agree on every shared variable.
//
// The search order is fixed and determines the reported justification:
//
//  1. rules in library order, output patterns in declared order
//  2. k-combinations of fact indices in lexicographic order
//  3. permutations of each combination, identity first
//
// The first success wins.
package proof
