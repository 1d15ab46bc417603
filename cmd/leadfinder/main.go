// Package main provides the entry point for the leadfinder CLI.
//
// leadfinder searches the web for small-business websites in a city and
// industry, analyzes each landing page for contact details and design or
// performance problems, and writes the findings as lead lists.
//
// Usage:
//
//	leadfinder find --city Jaipur --industry "law firm"
//	leadfinder clean
//
// See --help for all available options.
package main

// main is the entry point for leadfinder.
func main() {
	Execute()
}
