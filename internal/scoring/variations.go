package scoring

import "strings"

// variationTable maps a canonical lowercase keyword to its known synonyms and
// abbreviations. The table is intentionally asymmetric ("javascript" expands
// to "js" but "js" does not expand back); symmetrizing would reclassify
// inputs that the scorer has always treated as missing, so directionality is
// preserved. Built once at package init and never mutated.
var variationTable = map[string][]string{
	"javascript":              {"js", "node.js", "nodejs"},
	"typescript":              {"ts"},
	"python":                  {"py"},
	"react":                   {"reactjs", "react.js"},
	"angular":                 {"angularjs", "angular.js"},
	"vue":                     {"vuejs", "vue.js"},
	"aws":                     {"amazon web services"},
	"gcp":                     {"google cloud platform"},
	"azure":                   {"microsoft azure"},
	"postgresql":              {"postgres"},
	"mongodb":                 {"mongo"},
	"mysql":                   {"my sql"},
	"docker":                  {"containerization"},
	"kubernetes":              {"k8s"},
	"jenkins":                 {"ci/cd"},
	"git":                     {"version control"},
	"agile":                   {"scrum"},
	"machine learning":        {"ml", "artificial intelligence", "ai"},
	"artificial intelligence": {"ai", "machine learning", "ml"},
	"devops":                  {"dev ops"},
	"rest api":                {"restful", "api"},
	"graphql":                 {"graph ql"},
	"sql":                     {"database"},
	"nosql":                   {"no sql"},
}

// ExpandKeyword returns the ordered variation set for a keyword: the keyword
// itself, any dictionary synonyms, and one plural/singular alternate form.
// All comparisons downstream are against lowercased resume text, so the
// keyword is lowercased here.
func ExpandKeyword(keyword string) []string {
	keywordLower := strings.ToLower(keyword)
	variations := []string{keywordLower}

	if synonyms, ok := variationTable[keywordLower]; ok {
		variations = append(variations, synonyms...)
	}

	// Plural/singular toggle.
	if strings.HasSuffix(keywordLower, "s") {
		variations = append(variations, keywordLower[:len(keywordLower)-1])
	} else {
		variations = append(variations, keywordLower+"s")
	}

	return variations
}

// matchesVariation reports whether any variation of the keyword appears as a
// substring of the lowercased resume text.
func matchesVariation(resumeLower, keyword string) bool {
	for _, variation := range ExpandKeyword(keyword) {
		if strings.Contains(resumeLower, variation) {
			return true
		}
	}
	return false
}
