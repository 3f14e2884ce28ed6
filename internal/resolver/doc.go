// Package resolver implements the import-resolution pipeline: parsing a
// Python project's entry file, walking its transitive import closure by
// static inspection only, and classifying every module it finds into a
// package of known provenance.
//
// The pipeline is iterative: ModuleFinder locates a module's file on disk,
// ImportExtractor pulls normalized import descriptors out of its syntax
// tree, ImportResolver turns those descriptors into further module
// identifiers (consulting ModuleFinder again for relative and from-style
// imports), PackageClassifier assigns each resolved module to a Package,
// and ProjectParser drives the whole loop to a fixed point over a FIFO
// queue. None of this executes the target source; every decision is made
// from syntax and filesystem layout alone.
package resolver
