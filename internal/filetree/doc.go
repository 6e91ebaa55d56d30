// Package filetree models the directory tree shown in the sidebar and
// browsed in filebrowse mode. Directory contents are read lazily on
// expansion; the visible rows are the depth-first flattening of the
// expanded nodes.
package filetree
