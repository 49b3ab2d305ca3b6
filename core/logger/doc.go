// Package logger records interpreter session events as newline delimited
// JSON so sessions can be audited after the fact.
package logger
