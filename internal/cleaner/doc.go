// Package cleaner removes unwanted entries from previously written result
// files.
//
// The exclusion list overlaps with the search filter's denylist but is not
// identical to it: it also drops job and careers pages and directory links
// that slipped into older result files.
package cleaner
