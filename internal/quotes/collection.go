// Package quotes picks encouraging quotes for a mood, from a remote provider
// when one is configured and from a built-in collection otherwise.
package quotes

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var positiveQuotes = [...]Quote{
	{"The best way to predict the future is to create it.", "Peter Drucker"},
	{"Happiness is not something ready made. It comes from your own actions.", "Dalai Lama"},
	{"Life is 10% what happens to you and 90% how you react to it.", "Charles R. Swindoll"},
}

var motivationalQuotes = [...]Quote{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"It does not matter how slowly you go as long as you do not stop.", "Confucius"},
}

var comfortingQuotes = [...]Quote{
	{"This too shall pass. It might pass like a kidney stone, but it will pass.", "Unknown"},
	{"You are braver than you believe, stronger than you seem, and smarter than you think.", "A.A. Milne"},
	{"Every storm runs out of rain. Every dark night turns into day.", "Maya Angelou"},
}

func isHappy(mood string) bool { return mood == "happy" || mood == "very_happy" }

func isSad(mood string) bool { return mood == "sad" || mood == "very_sad" }

// Default returns a copy of the built-in collection for mood and sentiment.
// Happy moods or positive sentiment win over sad moods or negative sentiment.
func Default(mood, sentiment string) []Quote {
	var src []Quote
	switch {
	case isHappy(mood) || sentiment == "positive":
		src = positiveQuotes[:]
	case isSad(mood) || sentiment == "negative":
		src = comfortingQuotes[:]
	default:
		src = motivationalQuotes[:]
	}
	return append([]Quote(nil), src...)
}

// Category is the remote provider category for mood.
func Category(mood string) string {
	if isSad(mood) {
		return "inspirational"
	}
	return "happiness"
}
