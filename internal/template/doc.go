// Package template implements the tree materializer for the monoseed CLI.
//
// Materialization copies the fixed template tree into a fresh target
// directory while applying two transformations:
//
//   - Filtering: entries matching the build-time ignore rules (for example
//     node_modules at any depth) are skipped together with their subtrees.
//   - Link resolution: symbolic links are replaced by the content they
//     point at — file targets are copied, directory targets are recursed —
//     so the output tree contains no links and survives filesystems and
//     archive tools that mishandle them.
//
// Filtering is root-relative: the ignore rules are evaluated against each
// entry's base name and its path relative to the original template root,
// regardless of how deep the recursion currently is. The template root
// itself is never modified.
package template
