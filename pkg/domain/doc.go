// Package domain contains the core entities used by the validator: the
// documents being checked, the issues found in them and the report that
// collects those issues. The types are free of I/O concerns so they can be
// shared between the validator, the renderers and the CLI.
package domain
