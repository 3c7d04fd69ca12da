// Package lang implements the vcfg configuration language: a list of named
// constants whose values are numbers, strings, arrays, or references to other
// constants.
//
// # Grammar
//
// Informal EBNF:
//
//	program     → (declaration | NEWLINE)* EOF
//	declaration → "var" IDENTIFIER value (NEWLINE | EOF)
//	value       → reference | array | STRING | NUMBER
//	reference   → "^[" IDENTIFIER "]"
//	array       → "(" [ value ("," value)* ] ")"
//
// Identifiers are one or more lowercase letters or underscores; "var" is
// reserved. Numbers have an optional sign, an integer or decimal part
// (".5" and "10." are both valid), and an optional exponent. Every number is
// a float64. Strings are double-quoted with JSON escapes.
//
// Comments are discarded: "#" starts a line comment and "#|" ... "|#" is a
// block comment that may span lines.
//
// # Example
//
//	#| Server
//	   settings |#
//	var port 8080
//	var hosts ("alpha", "beta")
//	var primary ^[hosts]       # forward references are allowed
//	var listen (^[port], .5E+3)
//
// # Resolution
//
// [AST.Resolve] replaces every reference with the value it names, depth
// first, resolving each name at most once. A reference to an undeclared name
// or a chain of references that returns to a name still being resolved is
// reported as a [*SemanticError]. Malformed input is reported as a
// [*SyntaxError] with the line and column of the offending token.
//
// When a name is declared more than once the last value wins and the name
// keeps the position of its first declaration in the [Document].
//
// # Queries
//
// A resolved [Document] can be queried with expr-lang expressions (see
// [CompileQuery]). Document names shadow the built-in names (platform,
// hostname, cwd, env, file.*, path.*, mung.*).
package lang
