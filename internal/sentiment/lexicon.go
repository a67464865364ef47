package sentiment

// affectLexicon maps tokens to polarity in [-5, 5], AFINN style. This is the
// subset of the AFINN-165 list that shows up in journaling text; unknown
// tokens score zero.
var affectLexicon = map[string]int{
	// Strongly positive
	"outstanding": 5, "superb": 5, "breathtaking": 5,
	"amazing": 4, "awesome": 4, "brilliant": 4, "ecstatic": 4, "excellent": 4,
	"fabulous": 4, "fantastic": 4, "incredible": 4, "marvelous": 4,
	"overjoyed": 4, "thrilled": 4, "wonderful": 4, "wow": 4, "triumphant": 4,

	// Positive
	"beautiful": 3, "best": 3, "blessed": 3, "celebrate": 3, "celebrated": 3,
	"cheerful": 3, "delighted": 3, "excited": 3, "exciting": 3, "fun": 3,
	"grateful": 3, "great": 3, "happy": 3, "happiness": 3, "joy": 3,
	"joyful": 3, "love": 3, "loved": 3, "lovely": 3, "loving": 3,
	"perfect": 3, "proud": 3, "rejoice": 3, "success": 3, "successful": 3,
	"win": 3, "winning": 3, "wins": 3,

	"accomplish": 2, "accomplished": 2, "achieve": 2, "achieved": 2,
	"achievement": 2, "admire": 2, "adore": 2, "brave": 2, "calm": 2,
	"capable": 2, "cared": 2, "caring": 2, "comfort": 2, "comfortable": 2,
	"confident": 2, "eager": 2, "encouraged": 2, "energetic": 2, "enjoy": 2,
	"enjoyed": 2, "enjoying": 2, "free": 2, "friendly": 2, "glad": 2,
	"good": 2, "helpful": 2, "hope": 2, "hopeful": 2, "improved": 2,
	"improvement": 2, "inspired": 2, "interesting": 2, "kind": 2,
	"laughed": 2, "motivated": 2, "nice": 2, "optimistic": 2, "peaceful": 2,
	"pleasant": 2, "pleased": 2, "progress": 2, "proudly": 2, "refreshed": 2,
	"relaxed": 2, "relieved": 2, "satisfied": 2, "smile": 2, "smiled": 2,
	"strong": 2, "thankful": 2, "thanks": 2, "warm": 2, "welcome": 2,

	"better": 1, "curious": 1, "fine": 1, "fresh": 1, "gift": 1,
	"growth": 1, "interested": 1, "okay": 1, "productive": 1, "rested": 1,
	"safe": 1, "share": 1, "shared": 1, "steady": 1, "together": 1,

	// Mildly negative
	"bored": -1, "boring": -1, "confused": -1, "distracted": -1,
	"doubt": -1, "dull": -1, "forgot": -1, "hard": -1, "late": -1,
	"meh": -1, "missed": -1, "slow": -1, "tired": -1, "unsure": -1,

	// Negative
	"afraid": -2, "alone": -2, "angry": -2, "annoyed": -2, "annoying": -2,
	"anxiety": -2, "anxious": -2, "argue": -2, "argued": -2, "argument": -2,
	"ashamed": -2, "bad": -2, "broke": -2, "broken": -2, "complained": -2,
	"cried": -2, "cry": -2, "crying": -2, "depressed": -2, "depressing": -2,
	"disappointed": -2, "disappointing": -2, "discouraged": -2,
	"dread": -2, "drained": -2, "exhausted": -2, "fail": -2, "failed": -2,
	"failure": -2, "fear": -2, "frustrated": -2, "frustrating": -2,
	"guilt": -2, "guilty": -2, "hurt": -2, "hurts": -2, "lonely": -2,
	"lost": -2, "mad": -2, "mess": -2, "nervous": -2, "overwhelmed": -2,
	"pain": -2, "painful": -2, "panic": -2, "pressure": -2, "regret": -2,
	"sad": -2, "sadness": -2, "scared": -2, "sick": -2, "sore": -2,
	"stress": -2, "stressed": -2, "stressful": -2, "struggle": -2,
	"struggled": -2, "struggling": -2, "stuck": -2, "suffer": -2,
	"suffering": -2, "tense": -2, "tension": -2, "upset": -2, "weak": -2,
	"worried": -2, "worry": -2, "worrying": -2, "worse": -2, "wrong": -2,

	// Strongly negative
	"awful": -3, "crushed": -3, "despair": -3, "devastated": -3,
	"disaster": -3, "dreadful": -3, "furious": -3, "grief": -3, "hate": -3,
	"hated": -3, "hates": -3, "heartbroken": -3, "hopeless": -3,
	"horrible": -3, "miserable": -3, "nightmare": -3, "terrible": -3,
	"worthless": -3, "worst": -3,

	"agonizing": -4, "catastrophe": -4, "devastating": -4, "traumatic": -4,
	"unbearable": -4, "torture": -4,
}
