// Package httputil provides retry helpers for outbound HTTP requests.
//
// The GitHub search API occasionally answers with transient 5xx errors under
// load. Wrapping those in [RetryableError] lets callers re-attempt them with
// exponential backoff via [Retry] while passing hard failures (bad requests,
// rate limits) straight through.
package httputil
