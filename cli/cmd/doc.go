// Package cmd implements the exec command: the bootstrap driver that
// resolves program source, merges JSON configuration, builds the scope
// chain, and sequences compile and execute.
//
// Because the relative order of the -i, -s, -e, and -E flags is
// semantic, the package re-scans the raw argument vector into an
// ordered [Directive] list with [ScanDirectives] while kong remains
// authoritative for flag validation and help.
package cmd
