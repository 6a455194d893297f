// Package auth manages battle.net OAuth tokens.
//
// A Manager holds one set of client credentials and caches at most one
// live token per grant identity: the client-credentials token under
// the client ID, authorization-code tokens under a caller-chosen
// account identity. A cached token is handed out only while it has at
// least five minutes of validity left; past that it is refreshed
// before the call returns. Concurrent callers that hit a stale token
// share a single in-flight exchange rather than each posting to the
// token endpoint.
//
// The cache lives in memory on the Manager instance. Nothing is
// written to disk and nothing is process-global, so independent
// clients cannot corrupt each other's tokens.
package auth
