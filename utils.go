package gcauth

// coalesceString returns the first non-empty string of the provided
// strings.
func coalesceString(strs ...string) string {
	for _, s := range strs {
		if len(s) > 0 {
			return s
		}
	}
	return ""
}
