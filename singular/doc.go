// Package singular derives the singular form of English plural nouns.
//
// It is used to name the items of a collection field: a field called
// Tracks holds elements named track, a field called Categories holds
// elements named category.
//
// The algorithm is an ordered cascade of lookups and suffix rules. The
// first rule that applies wins and no rule is applied twice:
//
//  1. uncountable and irregular words (children, people, mice, ...)
//  2. Latin and Greek suffixes (matrices, larvae, analyses, ...)
//  3. -ies words whose singular keeps -ie (movies, cookies, ...)
//  4. words that are already singular (address, status, axis)
//  5. regular English suffixes: -ies, -xes, -sses, -ches, -shes, -s
//
// Compound identifiers are handled by singularizing their last word, so
// userAddresses becomes userAddress and line_items becomes line_item.
package singular
