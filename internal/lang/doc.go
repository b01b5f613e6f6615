// Package lang maps host language identifiers to language strategies.
//
// A Profile holds the lexical facts of one language: comment tokens,
// block delimiters, declaration keywords and an optional start directive.
// A Strategy binds a profile to the behavior of its Kind (common, markup,
// python, shell, config). Strategies for every supported language are
// built once at package initialization and shared; Resolve never builds
// anything.
//
// Documents that embed scripts (HTML, Vue) switch strategies per line;
// Effective reports which strategy applies at a given line.
package lang
