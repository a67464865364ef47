package themes

import (
	"regexp"
	"strings"
)

// themeCategory pairs a canonical theme name with its surface-form variants.
type themeCategory struct {
	name     string
	variants []string
}

// themeDictionary maps surface phrases onto ~20 canonical themes. Slice, not
// map: matching is first-category-wins, so iteration order is part of the
// observable behavior and must stay fixed.
var themeDictionary = []themeCategory{
	{"project", []string{
		"project", "projects", "web app", "webapp", "application", "app",
		"software", "development", "code", "programming", "program",
		"website", "site", "build", "building",
	}},
	{"work", []string{
		"work", "job", "office", "career", "employment", "workplace",
		"boss", "colleague", "colleagues", "coworker", "coworkers",
		"manager", "meeting", "meetings", "deadline", "deadlines",
		"task", "tasks", "assignment", "assignments",
	}},
	{"family", []string{
		"family", "mom", "dad", "mother", "father", "parents", "parent",
		"sibling", "siblings", "brother", "sister", "grandma", "grandpa",
		"grandmother", "grandfather", "aunt", "uncle", "cousin", "cousins",
	}},
	{"health", []string{
		"health", "exercise", "fitness", "workout", "workouts", "gym",
		"running", "diet", "nutrition", "yoga", "meditation", "wellness",
		"doctor", "medical", "medicine", "therapy",
	}},
	{"relationships", []string{
		"relationship", "relationships", "friend", "friends", "friendship",
		"friendships", "partner", "dating", "love", "boyfriend",
		"girlfriend", "spouse", "husband", "wife",
	}},
	{"education", []string{
		"school", "university", "college", "study", "studying", "learning",
		"class", "classes", "homework", "exam", "exams", "test", "tests",
		"course", "courses", "student", "students", "teacher", "professor",
	}},
	{"travel", []string{
		"travel", "trip", "trips", "vacation", "vacations", "journey",
		"journeys", "flight", "flights", "hotel", "hotels", "airport",
		"destination", "destinations",
	}},
	{"hobbies", []string{
		"hobby", "hobbies", "interest", "interests", "passion", "passions",
		"activity", "activities",
	}},
	{"food", []string{
		"food", "cooking", "recipe", "recipes", "meal", "meals",
		"restaurant", "restaurants", "dinner", "lunch", "breakfast", "cafe",
	}},
	{"finance", []string{
		"money", "finance", "financial", "budget", "budgeting", "saving",
		"savings", "investment", "investments", "salary", "income",
		"expense", "expenses", "bill", "bills",
	}},
	{"home", []string{
		"home", "house", "apartment", "room", "rooms", "furniture",
		"decor", "decoration", "cleaning", "maintenance",
	}},
	{"entertainment", []string{
		"movie", "movies", "film", "films", "tv", "television", "show",
		"shows", "series", "book", "books", "reading", "music", "song",
		"songs", "game", "games", "gaming",
	}},
	{"sports", []string{
		"sport", "sports", "football", "soccer", "basketball", "tennis",
		"baseball", "golf", "swimming", "cycling", "biking",
	}},
	{"pets", []string{
		"pet", "pets", "dog", "dogs", "cat", "cats", "animal", "animals",
	}},
	{"nature", []string{
		"nature", "outdoor", "outdoors", "park", "parks", "garden",
		"gardening", "hiking", "camping", "beach", "mountain", "mountains",
	}},
	{"shopping", []string{
		"shopping", "store", "stores", "shop", "shops", "purchase",
		"purchases", "buy", "buying",
	}},
	{"sleep", []string{
		"sleep", "sleeping", "rest", "nap", "naps", "bed", "bedtime",
		"insomnia",
	}},
	{"stress", []string{
		"stress", "stressed", "anxiety", "anxious", "worry", "worries",
		"pressure", "tension", "overwhelmed",
	}},
	{"goals", []string{
		"goal", "goals", "plan", "plans", "planning", "objective",
		"objectives", "target", "targets", "aim", "ambition", "ambitions",
	}},
	{"time", []string{
		"time", "schedule", "scheduling", "calendar", "appointment",
		"appointments", "event", "events",
	}},
}

var leadingDeterminer = regexp.MustCompile(`^(my|the|a|an|this|that|these|those)\s+`)

// cleanPhrase lowercases a phrase and strips a leading possessive or article.
func cleanPhrase(phrase string) string {
	normalized := strings.TrimSpace(strings.ToLower(phrase))
	return strings.TrimSpace(leadingDeterminer.ReplaceAllString(normalized, ""))
}

// CanonicalTheme maps a surface phrase onto its canonical theme. The second
// return is false when no category matches.
func CanonicalTheme(phrase string) (string, bool) {
	cleaned := cleanPhrase(phrase)
	if len(cleaned) < 2 {
		return "", false
	}

	for _, category := range themeDictionary {
		for _, variant := range category.variants {
			if matchesVariant(cleaned, variant) {
				return category.name, true
			}
		}
	}
	return "", false
}

// matchesVariant applies the three matching rules in order: exact, multi-word
// subset, single-word prefix within a length difference of 2 (plurals and
// close variants without catching unrelated words).
func matchesVariant(cleaned, variant string) bool {
	if cleaned == variant {
		return true
	}

	cleanedWords := strings.Fields(cleaned)
	variantWords := strings.Fields(variant)

	if len(cleanedWords) > 1 || len(variantWords) > 1 {
		shorter, longer := cleanedWords, variantWords
		if len(cleanedWords) > len(variantWords) {
			shorter, longer = variantWords, cleanedWords
		}
		for _, word := range shorter {
			found := false
			for _, lw := range longer {
				if lw == word || strings.Contains(lw, word) || strings.Contains(word, lw) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}

	if strings.HasPrefix(cleaned, variant) || strings.HasPrefix(variant, cleaned) {
		diff := len(cleaned) - len(variant)
		if diff < 0 {
			diff = -diff
		}
		return diff <= 2
	}
	return false
}

// NormalizeTheme returns the canonical theme for a phrase, or the cleaned
// phrase itself when no category matches.
func NormalizeTheme(phrase string) string {
	if canonical, ok := CanonicalTheme(phrase); ok {
		return canonical
	}
	return cleanPhrase(phrase)
}
