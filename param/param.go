// Package param finds the placeholders a reader has to fill in before running
// a command, e.g. YOUR_ANDROID_SDK_PATH or <package-name>.
package param

import "regexp"

var paramRegex = regexp.MustCompile(`<[a-zA-Z0-9-_]+>|\bYOUR_[A-Z0-9_]*[A-Z0-9]\b`)

// Extract returns the placeholders in input in order of first appearance.
func Extract(input string) []string {
	seen := map[string]bool{}
	var params []string
	for _, match := range paramRegex.FindAllString(input, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		params = append(params, match)
	}
	return params
}
