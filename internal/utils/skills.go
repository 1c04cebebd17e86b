package utils

import "strings"

// SplitSkills turns the stored skills column into a list.  Elements
// are trimmed and empty segments dropped, so "Go, ,SQL" yields
// ["Go", "SQL"].
func SplitSkills(stored string) []string {
	out := []string{}
	for _, s := range strings.Split(stored, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinSkills is the inverse of SplitSkills: trimmed, non-empty
// elements joined with ", ".
func JoinSkills(skills []string) string {
	kept := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}
