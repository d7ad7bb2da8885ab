// Package util provides string helpers shared by the message packages.
package util
