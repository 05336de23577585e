// Package llm provides an OpenAI-compatible chat client used to identify
// media files whose filenames defeat the rule-based classifier.
//
// The client sends the filename with a structured prompt requesting JSON
// output and maps the response onto a classify.Identity. Requests retry on
// HTTP 408/429/5xx and network timeouts with exponential backoff (base 1s,
// max 10s, up to 5 attempts); context cancellation aborts retries
// immediately.
//
// The API key travels only in the Authorization header. It is never logged
// and never appears in returned errors or journal records.
package llm
