// Package tree defines the derivation tree shared by parse results and by
// the pattern trees of proof rules.
//
// A tree is one of three variants:
//
//   - Node: a binary constituent with a category and two owned subtrees
//   - Terminal: a leaf holding a literal token
//   - Variable: a leaf placeholder whose name starts with VariablePrefix
//
// Trees carry no behavior beyond equality, copying, flattening and the
// canonical bracketed rendering. Matching lives in package unify.
package tree
