package scraper

import (
	"strings"

	"jobwatch/internal/config"
	"jobwatch/internal/models"
)

// Filter holds the run's keyword policy with every list pre-lowercased.
// Matching is plain substring containment throughout; no tokenization.
type Filter struct {
	include   []string
	exclude   []string
	levels    []string
	skills    []string
	locations []string
}

// NewFilter compiles the config's keyword lists once for the run.
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		include:   lowerAll(cfg.IncludeKeywords),
		exclude:   lowerAll(cfg.ExcludeKeywords),
		levels:    lowerAll(cfg.LevelKeywords),
		skills:    lowerAll(cfg.SkillKeywords),
		locations: lowerAll(cfg.Locations),
	}
}

// Match evaluates job against the policy:
//
//  1. any exclude keyword in title+summary rejects, unconditionally
//  2. with level or skill keywords configured, every non-empty one of the two
//     lists must match at least once (AND); otherwise include_keywords is an
//     OR fallback, and an empty fallback passes everything
//  3. with locations configured, at least one must appear in the text or in
//     the URL
func (f *Filter) Match(job models.Job) bool {
	text := strings.ToLower(job.Title + "\n" + job.Summary)

	if containsAny(text, f.exclude) {
		return false
	}

	if len(f.levels) > 0 || len(f.skills) > 0 {
		if len(f.levels) > 0 && !containsAny(text, f.levels) {
			return false
		}
		if len(f.skills) > 0 && !containsAny(text, f.skills) {
			return false
		}
	} else if len(f.include) > 0 && !containsAny(text, f.include) {
		return false
	}

	if len(f.locations) > 0 {
		url := strings.ToLower(job.URL)
		matched := false
		for _, loc := range f.locations {
			if strings.Contains(text, loc) || strings.Contains(url, loc) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
