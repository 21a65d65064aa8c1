package behavior

// encouragements is the fixed pool the every-10th-click notification
// draws from, uniformly at random.
var encouragements = []string{
	"You're on a roll — keep it up!",
	"Every click brings you closer to funding.",
	"Persistence pays. Literally.",
	"Great momentum today!",
	"The best opportunities go to the most active.",
	"You're doing better than most applicants.",
}
