package cutoff

// 2025/26 admission cycle thresholds. Order is display order.
var (
	selfSponsored = Table{
		Category: SelfSponsored,
		Entries: []Entry{
			{Program: "Medicine", Threshold: 78},
			{Program: "Dental Medicine", Threshold: 75},
			{Program: "Pharmacy", Threshold: 70},
			{Program: "Software Engineering", Threshold: 72},
			{Program: "Electrical and Computer Engineering", Threshold: 70},
			{Program: "Civil Engineering", Threshold: 66},
			{Program: "Mechanical Engineering", Threshold: 65},
			{Program: "Architecture", Threshold: 68},
			{Program: "Computer Science", Threshold: 67},
			{Program: "Information Systems", Threshold: 62},
			{Program: "Accounting and Finance", Threshold: 60},
			{Program: "Economics", Threshold: 58},
			{Program: "Management", Threshold: 56},
			{Program: "Law", Threshold: 64},
			{Program: "Psychology", Threshold: 55},
			{Program: "Journalism and Communication", Threshold: 54},
			{Program: NaturalFreshmanProgram, Threshold: 54},
			{Program: SocialFreshmanProgram, Threshold: 52},
		},
	}

	governmentSponsored = Table{
		Category: GovernmentSponsored,
		Entries: []Entry{
			{Program: "Medicine", Threshold: 85},
			{Program: "Dental Medicine", Threshold: 82},
			{Program: "Pharmacy", Threshold: 78},
			{Program: "Software Engineering", Threshold: 80},
			{Program: "Electrical and Computer Engineering", Threshold: 79},
			{Program: "Civil Engineering", Threshold: 75},
			{Program: "Mechanical Engineering", Threshold: 74},
			{Program: "Architecture", Threshold: 76},
			{Program: "Computer Science", Threshold: 76},
			{Program: "Information Systems", Threshold: 70},
			{Program: "Accounting and Finance", Threshold: 68},
			{Program: "Economics", Threshold: 66},
			{Program: "Law", Threshold: 72},
			{Program: "Psychology", Threshold: 63},
			{Program: "Natural Science Freshman Program", Threshold: 60},
			{Program: "Social Science Freshman Program", Threshold: 58},
		},
	}
)

var defaultRegistry = MustNew(selfSponsored, governmentSponsored)

// Default returns the compiled-in registry for the active cycle.
func Default() *Registry {
	return defaultRegistry
}
