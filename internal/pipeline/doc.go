// Package pipeline analyzes candidate websites.
//
// A single URL goes through an ordered list of steps: fetch, parse,
// pagespeed, contacts and design. The first failing step stops the pipeline
// and the URL is reported as an error result; the pagespeed step never
// fails, it leaves the scores empty instead.
//
// BatchProcessor runs the pipeline over many URLs with a bounded number of
// concurrent workers (errgroup) and a token-bucket rate limiter shared by all
// workers (golang.org/x/time/rate). Every input URL yields exactly one
// result, including URLs skipped because the context was cancelled.
package pipeline
