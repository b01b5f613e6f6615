// Package dispatcher routes rewrite commands to handlers and coordinates
// their execution.
//
// # Architecture
//
// The dispatcher uses a two-tier routing system:
//
//  1. Namespace Router: routes actions by namespace prefix ("comment.toggle"
//     goes to the "comment" namespace handler).
//
//  2. Handler Registry: maps exact action names to handlers. Multiple
//     handlers can be registered for the same action, sorted by priority.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks run and may cancel the action
//  2. The router (then the registry) finds the handler
//  3. The handler runs against the ExecutionContext, with panic recovery
//  4. Post-dispatch hooks run
//  5. Metrics are recorded (if enabled)
//
// Handlers never mutate the buffer. A handler reads the snapshot and the
// selections from the ExecutionContext and returns a Result holding one
// edit batch computed against that snapshot. The host applies the batch.
//
// # Usage
//
//	sys := dispatcher.NewSystem(dispatcher.DefaultSystemConfig())
//
//	ctx := execctx.New().
//	    WithSnapshot(buf.Snapshot()).
//	    WithSelections(cursor.NewCursor(buffer.Point{Line: 2})).
//	    WithLanguage("typescript")
//
//	result := sys.Dispatch(input.NewAction("comment.toggle", input.SourceCLI), ctx)
package dispatcher
