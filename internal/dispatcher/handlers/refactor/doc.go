// Package refactor implements the "refactor" namespace: commands that
// restructure a statement or declaration in place.
//
// Every command reads the pre-edit snapshot and the selections from the
// execution context and answers with a batch of edits in pre-edit
// coordinates. Commands that do not recognize the text under the
// selections return a no-op result rather than an error.
//
// Language support is decided by the strategy effective at the line the
// command works on, so script regions of HTML and Vue documents behave like
// JavaScript or TypeScript.
package refactor
