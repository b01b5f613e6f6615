// Package input defines the command invocation passed from a host to the
// dispatcher.
//
// An Action names a command ("comment.toggle", "editor.swap", ...) and
// carries optional arguments. Every action gets a unique ID so that log
// lines and server responses can be correlated with the request.
package input
