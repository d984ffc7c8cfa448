// Package gra tunes grey relational analysis classifiers.
//
// For every binary ideal reference x0 over N indices it computes grey
// relational grades of each sample, splits the grades into three bands around
// their mean, and scores the split against the known two-category labels.
package gra
