package readfile

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedColumns is returned when a column list mixes indices and names.
	ErrMixedColumns = errors.New("readfile: columns must be all indices or all names")
	// ErrDTypeLength is returned when a per-column dtype list does not match the selected column count.
	ErrDTypeLength = errors.New("readfile: number of dtypes differs from number of columns")
	// ErrMissingMarker is returned when the vertical header layout is requested without a comment marker.
	ErrMissingMarker = errors.New("readfile: vertical header layout requires a comment marker")
	// ErrNotImplemented is returned for header layouts that are not supported.
	ErrNotImplemented = errors.New("readfile: not implemented")
	// ErrUnknownKind is returned when a type name cannot be parsed.
	ErrUnknownKind = errors.New("readfile: unknown column type")
	// ErrUnknownEncoding is returned when a text encoding name is not recognised.
	ErrUnknownEncoding = errors.New("readfile: unknown text encoding")
	// ErrBadFormat is returned when a save format specifier cannot be parsed.
	ErrBadFormat = errors.New("readfile: invalid format specifier")
	// ErrHeaderNotFound is returned when the requested header line does not exist.
	ErrHeaderNotFound = errors.New("readfile: header line not found")
	// ErrMissingField is returned when a data row is shorter than the selected columns require.
	ErrMissingField = errors.New("readfile: missing field")
	// ErrConversion is returned when a field cannot be converted under Strict.
	ErrConversion = errors.New("readfile: conversion failed")
	// ErrColumnLength is returned by Save when columns differ in length.
	ErrColumnLength = errors.New("readfile: all columns must have the same length")
	// ErrFileExists is returned by Save when the output exists and neither Overwrite nor Append is set.
	ErrFileExists = errors.New("readfile: file already exists")
)

// ConfigError reports a bad argument combination detected before any file I/O.
type ConfigError struct {
	Arg string
	Err error
}

// Error names the offending argument.
func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("readfile: invalid %s: %v", e.Arg, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configErr(arg string, err error) error {
	return &ConfigError{Arg: arg, Err: err}
}

// ParseError contains location information for structural errors in a data file.
// Line is the physical 1-based line number, Row the 1-based data row and
// Column the zero-based column index that could not be read.
type ParseError struct {
	File   string
	Line   int
	Row    int
	Column int
	Err    error
}

// Error formats the parse error message with the stored location.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("readfile: %s: line %d (row %d), column %d: %v", file, e.Line, e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConversionError reports a field that could not be converted to its column kind.
type ConversionError struct {
	File   string
	Column int
	Row    int
	Kind   Kind
	Value  string
}

// Error formats the conversion failure with file and column context.
func (e *ConversionError) Error() string {
	if e == nil {
		return ""
	}
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("readfile: %s: column %d cannot be converted to %s (row %d: %q)", file, e.Column, e.Kind, e.Row, e.Value)
}

// Unwrap returns ErrConversion.
func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrConversion
}
