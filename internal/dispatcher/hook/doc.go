// Package hook provides pre/post dispatch hooks for the dispatcher.
//
// Hooks intercept command dispatch for logging, validation and other
// cross-cutting concerns. Each hook has a name and a priority:
//
//   - Pre-hooks run highest priority first and may cancel the command.
//   - Post-hooks run lowest priority first so that high priority hooks
//     observe the final result.
//
// Built-in hooks:
//
//   - AuditHook: logs every dispatched command and its outcome
//   - ValidationHook: cancels commands whose context cannot be edited
package hook
