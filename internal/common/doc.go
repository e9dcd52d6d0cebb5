// Package common holds interfaces shared across autopush packages.
//
// It exists to break import cycles: both the git and notify packages log
// through the Logger interface, while the logger package provides the
// implementation. Keeping the interface here lets those packages depend on
// the contract without depending on each other.
package common
