package main

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

type SearchSignals struct {
	Search         string `json:"search"`
	UserSearch     string `json:"userSearch"`
	ChantierSearch string `json:"chantierSearch"`
}

// Levenshtein calculates the Levenshtein distance between two strings.
func Levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	n, m := len(r1), len(r2)
	if n > m {
		r1, r2 = r2, r1
		n, m = m, n
	}

	currentRow := make([]int, n+1)
	for i := 0; i <= n; i++ {
		currentRow[i] = i
	}

	for i := 1; i <= m; i++ {
		previousRow := currentRow
		currentRow = make([]int, n+1)
		currentRow[0] = i
		for j := 1; j <= n; j++ {
			add, del, change := previousRow[j]+1, currentRow[j-1]+1, previousRow[j-1]
			if r1[j-1] != r2[i-1] {
				change++
			}
			currentRow[j] = min(add, del, change)
		}
	}
	return currentRow[n]
}

const searchResultLimit = 15

// matchScore ranks a query against the candidate fields: substring hits win
// outright, close fuzzy matches rank by edit distance, everything else is out.
func matchScore(query string, fields ...string) (int, bool) {
	if query == "" {
		return 0, true
	}
	score := 1000
	for _, f := range fields {
		f = strings.ToLower(f)
		if strings.Contains(f, query) {
			return 0, true
		}
		if d := Levenshtein(query, f); d < 5 && d < score {
			score = d
		}
	}
	return score, score < 1000
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	signals := &SearchSignals{}
	if err := datastar.ReadSignals(r, signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	searchType := r.URL.Query().Get("type")

	var query string
	switch searchType {
	case "users":
		query = signals.UserSearch
	case "chantiers":
		query = signals.ChantierSearch
	default:
		http.Error(w, "Invalid search type", http.StatusBadRequest)
		return
	}
	if query == "" && signals.Search != "" {
		query = signals.Search
	}
	query = strings.ToLower(strings.TrimSpace(query))

	sse := datastar.NewSSE(w, r)
	if searchType == "users" {
		patchUserResults(sse, query)
		return
	}
	patchChantierResults(sse, query)
}

func patchUserResults(sse *datastar.ServerSentEventGenerator, query string) {
	type scoredUser struct {
		ID    string
		Name  string
		Role  string
		Score int
	}

	var results []scoredUser
	usersMu.RLock()
	for _, u := range users {
		// IDs are too short for the fuzzy threshold, names only.
		score, ok := matchScore(query, u.FirstName, u.LastName)
		if !ok {
			continue
		}
		results = append(results, scoredUser{ID: u.ID, Name: u.DisplayName(), Role: u.Role, Score: score})
	}
	usersMu.RUnlock()

	slices.SortFunc(results, func(a, b scoredUser) int {
		return a.Score - b.Score
	})
	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}

	var sb strings.Builder
	sb.WriteString(`<div id="user-results" class="list">`)
	for _, res := range results {
		sb.WriteString(fmt.Sprintf(`
			<a class="row" href="/users#%s">
				<span>%s</span>
				<label>%s</label>
			</a>`, res.ID, res.Name, res.Role))
	}
	if len(results) == 0 {
		sb.WriteString(`<div class="padding">Aucun résultat</div>`)
	}
	sb.WriteString("</div>")

	sse.PatchElements(sb.String())
}

func patchChantierResults(sse *datastar.ServerSentEventGenerator, query string) {
	type scoredChantier struct {
		ID     string
		Name   string
		Status string
		Score  int
	}

	var results []scoredChantier
	chantiersMu.RLock()
	for _, c := range chantiers {
		score, ok := matchScore(query, c.Name, c.Address)
		if !ok {
			continue
		}
		results = append(results, scoredChantier{ID: c.ID, Name: c.Name, Status: c.Status, Score: score})
	}
	chantiersMu.RUnlock()

	slices.SortFunc(results, func(a, b scoredChantier) int {
		return a.Score - b.Score
	})
	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}

	var sb strings.Builder
	sb.WriteString(`<div id="chantier-results" class="list">`)
	for _, res := range results {
		sb.WriteString(fmt.Sprintf(`
			<a class="row" href="/chantiers#%s">
				<span>%s</span>
				<label>%s</label>
			</a>`, res.ID, res.Name, res.Status))
	}
	if len(results) == 0 {
		sb.WriteString(`<div class="padding">Aucun résultat</div>`)
	}
	sb.WriteString("</div>")

	sse.PatchElements(sb.String())
}
