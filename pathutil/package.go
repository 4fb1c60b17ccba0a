// Package pathutil implements the path grammar and helpers used by the
// folder tree: validation, component splitting, parent resolution, last
// common ancestor, prefix checks and listing serialization.
//
// A canonical folder path is either the single string "/" (the root) or a
// string of the form /c1/c2/.../cN/ where each ci is a non-empty folder
// name of 1..MaxNameLength lowercase letters. Every function in this
// package other than IsValid assumes its string arguments are already
// canonical; callers must validate with IsValid first.
package pathutil
