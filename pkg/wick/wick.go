// Package wick carries module-level metadata shared by the CLI.
package wick

// Version is the release version the CLI reports.
const Version = "0.1.0"
