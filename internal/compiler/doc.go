// Package compiler drives a complete compile of a content tree.
//
// A compile is a fixed sequence of stages. The link table is fully built
// before any page renders; rendering then runs in parallel because pages only
// read the shared, immutable classifier and link tables. Rendered documents
// are kept in memory and sorted by output path before anything is written,
// so output does not depend on scheduling.
package compiler
