package sentiment

// Keyword tables. Arrays so the data cannot be appended to or resized.

var journalPositive = [...]string{
	"happy", "joy", "love", "excited", "wonderful", "amazing", "great", "good",
	"fantastic", "awesome",
}

var journalNegative = [...]string{
	"sad", "angry", "hate", "terrible", "awful", "bad", "horrible", "depressed",
	"anxious", "worried",
}

var extendedPositive = [...]string{
	"happy", "joy", "love", "excited", "wonderful", "amazing", "great", "good",
	"fantastic", "awesome", "brilliant", "excellent", "perfect", "beautiful",
	"grateful", "blessed", "peaceful", "content", "optimistic", "hopeful",
}

var extendedNegative = [...]string{
	"sad", "angry", "hate", "terrible", "awful", "bad", "horrible", "depressed",
	"anxious", "worried", "stressed", "frustrated", "disappointed", "lonely",
	"tired", "exhausted", "overwhelmed", "confused", "scared", "afraid",
}
