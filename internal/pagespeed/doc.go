// Package pagespeed scores websites with the PageSpeed Insights v5 API.
//
// Score requests the performance, accessibility, best-practices and SEO
// Lighthouse categories and returns them on a 0-100 scale. Any failure is
// returned as an error; callers treat a failed score as missing data rather
// than a failed analysis.
package pagespeed
