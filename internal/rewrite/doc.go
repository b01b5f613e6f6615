// Package rewrite holds the pure text rewrites behind the editor commands.
//
// Every rewrite takes the text it works on plus whatever context it needs
// (comment token, declaration rules, line ending) and returns the new text
// and whether the rewrite applied. A false result means the triggering
// pattern did not match; callers treat it as a silent no-op.
//
// Rewrites never look at a buffer or selection. Command handlers read the
// snapshot, call a rewrite and turn its result into edits.
package rewrite
