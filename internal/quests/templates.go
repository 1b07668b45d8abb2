package quests

import (
	"math/rand"

	"github.com/froliik/froliik-backend/pkg/enums"
)

// questTitles holds the fixed per-category title pools.
var questTitles = map[enums.QuestCategory][]string{
	enums.CategoryMindfulness: {
		"Take a mindful walk",
		"Breathe with intention",
		"Notice five beautiful things",
		"Sit in stillness for ten minutes",
		"Write down three things you're grateful for",
	},
	enums.CategoryProductivity: {
		"Clear one cluttered corner",
		"Finish the task you've been avoiding",
		"Plan tomorrow in five lines",
		"Inbox zero for twenty minutes",
		"Single-task one full hour",
	},
	enums.CategoryMovement: {
		"Take the long way there",
		"Stretch like you mean it",
		"Dance to one full song",
		"Walk a street you've never walked",
		"Climb every staircase you meet today",
	},
	enums.CategoryLearning: {
		"Learn five words in a new language",
		"Read one chapter of anything",
		"Watch a talk outside your field",
		"Teach someone something small",
		"Look up how one everyday thing works",
	},
	enums.CategoryCreativity: {
		"Sketch what's in front of you",
		"Write a six-word story",
		"Photograph something ordinary beautifully",
		"Make something with your hands",
		"Hum a melody and record it",
	},
	enums.CategoryConnection: {
		"Message someone you miss",
		"Give a genuine compliment",
		"Call instead of texting",
		"Ask someone about their day and listen",
		"Thank someone who helped you",
	},
	enums.CategoryAdventure: {
		"Order something you can't pronounce",
		"Explore a new neighborhood",
		"Say yes to the next invitation",
		"Find the best view within a mile",
		"Take a different route home",
	},
	enums.CategoryKindness: {
		"Do a favor without being asked",
		"Leave a kind note for a stranger",
		"Let someone go ahead of you",
		"Donate something you no longer need",
		"Check in on a neighbor",
	},
}

// questDescriptions holds the fixed (category, difficulty) description table.
var questDescriptions = map[enums.QuestCategory]map[enums.Difficulty]string{
	enums.CategoryMindfulness: {
		enums.DifficultyGentle:      "Find a quiet moment and let your attention settle. A few minutes of presence is all this takes.",
		enums.DifficultyModerate:    "Set aside ten distraction-free minutes to be fully present with whatever you choose to notice.",
		enums.DifficultyAdventurous: "Dedicate half an hour to deep, uninterrupted presence. Leave your phone in another room.",
	},
	enums.CategoryProductivity: {
		enums.DifficultyGentle:      "Pick the smallest thing on your list and finish it completely. Small wins count.",
		enums.DifficultyModerate:    "Block out focused time and move one meaningful task from open to done.",
		enums.DifficultyAdventurous: "Tackle the task you've been putting off the longest. Today is the day it stops looming.",
	},
	enums.CategoryMovement: {
		enums.DifficultyGentle:      "Get your body moving gently for a few minutes. Comfort over intensity.",
		enums.DifficultyModerate:    "Move with purpose for at least twenty minutes, whatever form feels right.",
		enums.DifficultyAdventurous: "Push your usual limits with a workout or route that genuinely challenges you.",
	},
	enums.CategoryLearning: {
		enums.DifficultyGentle:      "Spend a few curious minutes on something you've always wondered about.",
		enums.DifficultyModerate:    "Give a new topic twenty real minutes of attention and note one thing you learned.",
		enums.DifficultyAdventurous: "Dive deep into an unfamiliar subject and explain it to someone else afterwards.",
	},
	enums.CategoryCreativity: {
		enums.DifficultyGentle:      "Make one small thing without judging it. Done beats perfect.",
		enums.DifficultyModerate:    "Set aside time to create something from scratch, start to finish.",
		enums.DifficultyAdventurous: "Create something outside your comfort zone and share it with at least one person.",
	},
	enums.CategoryConnection: {
		enums.DifficultyGentle:      "Reach out to one person with no agenda other than making their day a bit brighter.",
		enums.DifficultyModerate:    "Have a real conversation today. Ask questions and listen more than you speak.",
		enums.DifficultyAdventurous: "Reconnect with someone you've lost touch with. The first message is the quest.",
	},
	enums.CategoryAdventure: {
		enums.DifficultyGentle:      "Break one tiny routine today and notice how it feels.",
		enums.DifficultyModerate:    "Go somewhere you've never been, even if it's just a few streets away.",
		enums.DifficultyAdventurous: "Plan and do something today that your future self will tell stories about.",
	},
	enums.CategoryKindness: {
		enums.DifficultyGentle:      "One small act of kindness, done quietly, with nothing expected back.",
		enums.DifficultyModerate:    "Go out of your way to make someone's day noticeably easier.",
		enums.DifficultyAdventurous: "Organize a kind gesture that takes real effort, for someone who won't see it coming.",
	},
}

// templateTitle picks a uniformly-random title for the category. Unknown
// categories fall back to the mindfulness pool.
func templateTitle(category enums.QuestCategory) string {
	pool, ok := questTitles[category]
	if !ok || len(pool) == 0 {
		pool = questTitles[enums.CategoryMindfulness]
	}
	return pool[rand.Intn(len(pool))]
}

// templateDescription looks up the (category, difficulty) entry. Unknown
// category falls back to mindfulness/moderate; unknown difficulty falls back
// to the category's moderate entry.
func templateDescription(category enums.QuestCategory, difficulty enums.Difficulty) string {
	table, ok := questDescriptions[category]
	if !ok {
		table = questDescriptions[enums.CategoryMindfulness]
	}
	if desc, ok := table[difficulty]; ok {
		return desc
	}
	return table[enums.DifficultyModerate]
}
