package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/model/config"
	"github.com/standup-lab/cadence/pkg/domain/types"
)

// AnalyzeRisks scans the period's latest updates plus the lookback history
// for risk signals. It is deterministic and never fails: malformed or
// unmatched text simply yields no finding.
//
// Findings are ordered by kind (missing, repeated blocker, stalled task),
// then author ascending, then message, so report rendering is stable.
func AnalyzeRisks(
	period types.Period,
	latest []*model.Update,
	expected []types.AuthorID,
	history map[types.Period][]*model.Update,
	rules *config.Rules,
) []model.RiskFinding {
	if rules == nil {
		rules = config.DefaultRules()
	}

	// chain is the analysis window ordered oldest to newest, ending at the
	// current period.
	chain := make([]types.Period, 0, rules.Lookback+1)
	for _, p := range period.PrevN(rules.Lookback) {
		chain = append([]types.Period{p}, chain...)
	}
	chain = append(chain, period)

	byAuthor := indexByAuthor(latest, history)

	var findings []model.RiskFinding
	findings = append(findings, missingUpdateFindings(period, chain, expected, byAuthor)...)
	findings = append(findings, repeatedBlockerFindings(chain, byAuthor, rules)...)
	findings = append(findings, stalledTaskFindings(chain, byAuthor, rules)...)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Kind.Rank() != findings[j].Kind.Rank() {
			return findings[i].Kind.Rank() < findings[j].Kind.Rank()
		}
		if findings[i].Author != findings[j].Author {
			return findings[i].Author < findings[j].Author
		}
		return findings[i].Message < findings[j].Message
	})

	return findings
}

// indexByAuthor merges current and historical updates into per-author,
// per-period lookups. Only the latest revision per period matters for
// analysis; callers pass latest-per-author slices.
func indexByAuthor(latest []*model.Update, history map[types.Period][]*model.Update) map[types.AuthorID]map[types.Period]*model.Update {
	idx := make(map[types.AuthorID]map[types.Period]*model.Update)

	add := func(u *model.Update) {
		if _, ok := idx[u.Author]; !ok {
			idx[u.Author] = make(map[types.Period]*model.Update)
		}
		idx[u.Author][u.Period] = u
	}

	for _, u := range latest {
		add(u)
	}
	for _, updates := range history {
		for _, u := range updates {
			add(u)
		}
	}

	return idx
}

func missingUpdateFindings(
	period types.Period,
	chain []types.Period,
	expected []types.AuthorID,
	byAuthor map[types.AuthorID]map[types.Period]*model.Update,
) []model.RiskFinding {
	authors := make([]types.AuthorID, len(expected))
	copy(authors, expected)
	sort.Slice(authors, func(i, j int) bool { return authors[i] < authors[j] })

	var findings []model.RiskFinding
	for _, author := range authors {
		periods := byAuthor[author]
		if _, submitted := periods[period]; submitted {
			continue
		}

		// Cite the most recent prior update in the window, if any, so the
		// finding carries traceable evidence of the absence.
		finding := model.RiskFinding{
			Kind:    types.FindingMissingUpdate,
			Author:  author,
			Message: fmt.Sprintf("no update submitted for %s", period),
			Evidence: []model.EvidenceRef{
				{Author: author, Period: period},
			},
		}
		for i := len(chain) - 2; i >= 0; i-- {
			if prev, ok := periods[chain[i]]; ok {
				finding.Message = fmt.Sprintf("no update submitted for %s (last update %s)", period, prev.Period)
				finding.Evidence = append(finding.Evidence, evidenceRef(prev))
				break
			}
		}

		findings = append(findings, finding)
	}

	return findings
}

func repeatedBlockerFindings(
	chain []types.Period,
	byAuthor map[types.AuthorID]map[types.Period]*model.Update,
	rules *config.Rules,
) []model.RiskFinding {
	current := chain[len(chain)-1]

	var findings []model.RiskFinding
	for _, author := range sortedAuthors(byAuthor) {
		periods := byAuthor[author]
		cur, ok := periods[current]
		if !ok {
			continue
		}

		for _, phrase := range blockerPhrases(cur.Content, rules.BlockerKeywords) {
			// Walk backwards while consecutive prior periods repeat the
			// same normalized phrase.
			evidence := []model.EvidenceRef{evidenceRef(cur)}
			for i := len(chain) - 2; i >= 0; i-- {
				prev, ok := periods[chain[i]]
				if !ok || !containsPhrase(blockerPhrases(prev.Content, rules.BlockerKeywords), phrase) {
					break
				}
				evidence = append([]model.EvidenceRef{evidenceRef(prev)}, evidence...)
			}

			if len(evidence) < 2 {
				continue
			}

			findings = append(findings, model.RiskFinding{
				Kind:   types.FindingRepeatedBlocker,
				Author: author,
				Message: fmt.Sprintf("%q reported in %d consecutive periods (%s – %s)",
					phrase, len(evidence), evidence[0].Period, current),
				Evidence: evidence,
			})
		}
	}

	return findings
}

func stalledTaskFindings(
	chain []types.Period,
	byAuthor map[types.AuthorID]map[types.Period]*model.Update,
	rules *config.Rules,
) []model.RiskFinding {
	current := chain[len(chain)-1]

	var findings []model.RiskFinding
	for _, author := range sortedAuthors(byAuthor) {
		periods := byAuthor[author]
		cur, ok := periods[current]
		if !ok {
			continue
		}

		norm := normalizeText(cur.Content)
		if norm == "" || hasAnyKeyword(norm, rules.ProgressKeywords) {
			continue
		}

		evidence := []model.EvidenceRef{evidenceRef(cur)}
		for i := len(chain) - 2; i >= 0; i-- {
			prev, ok := periods[chain[i]]
			if !ok || normalizeText(prev.Content) != norm {
				break
			}
			evidence = append([]model.EvidenceRef{evidenceRef(prev)}, evidence...)
		}

		if len(evidence) < 2 {
			continue
		}

		findings = append(findings, model.RiskFinding{
			Kind:   types.FindingStalledTask,
			Author: author,
			Message: fmt.Sprintf("update unchanged for %d consecutive periods (%s – %s): %q",
				len(evidence), evidence[0].Period, current, cur.Excerpt(80)),
			Evidence: evidence,
		})
	}

	return findings
}

func evidenceRef(u *model.Update) model.EvidenceRef {
	return model.EvidenceRef{
		UpdateID: u.ID,
		Author:   u.Author,
		Period:   u.Period,
		Excerpt:  u.Excerpt(120),
	}
}

func sortedAuthors(byAuthor map[types.AuthorID]map[types.Period]*model.Update) []types.AuthorID {
	authors := make([]types.AuthorID, 0, len(byAuthor))
	for a := range byAuthor {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i] < authors[j] })
	return authors
}

// blockerPhrases extracts the normalized clauses of content that mention a
// blocker keyword. Matching is a plain normalized string comparison, not
// semantic: "blocked on API access" in two consecutive periods matches,
// "blocked on the API" does not.
func blockerPhrases(content string, keywords []string) []string {
	seen := make(map[string]struct{})
	var phrases []string

	for _, line := range strings.Split(content, "\n") {
		for _, clause := range strings.FieldsFunc(line, func(r rune) bool {
			return r == '.' || r == ';' || r == '!' || r == '?'
		}) {
			norm := normalizeText(clause)
			if norm == "" || !hasAnyKeyword(norm, keywords) {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}
			phrases = append(phrases, norm)
		}
	}

	sort.Strings(phrases)
	return phrases
}

func containsPhrase(phrases []string, phrase string) bool {
	for _, p := range phrases {
		if p == phrase {
			return true
		}
	}
	return false
}

func hasAnyKeyword(norm string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(norm, normalizeText(kw)) {
			return true
		}
	}
	return false
}

// normalizeText lowercases, strips punctuation and folds whitespace
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 0x80:
			// keep non-ASCII letters as-is
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
