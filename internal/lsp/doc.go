// Package lsp implements the editor's Language Server Protocol session
// controller: a capability-probed, asynchronously polled client that turns
// edit engine change events into textDocument/didChange notifications and
// turns server responses into diagnostics, semantic tokens, and feature
// results (completion, hover, signature help, definition/declaration,
// references, rename, formatting) attached back onto the document model.
//
// The controller never blocks the main loop. Requests are sent and
// forgotten; responses are polled once per frame by Session.Context.
package lsp
