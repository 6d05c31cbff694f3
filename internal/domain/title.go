package domain

import "strings"

// CategoryPrefix is the namespace prefix of category page titles
const CategoryPrefix = "Category:"

// NormalizeName turns a page title into a category name: the namespace
// prefix is stripped, underscores become spaces and surrounding space is trimmed.
func NormalizeName(title string) string {
	name := strings.TrimSpace(title)
	name = strings.TrimPrefix(name, CategoryPrefix)
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// PageTitle returns the full page title for a category name
func PageTitle(name string) string {
	return CategoryPrefix + NormalizeName(name)
}
