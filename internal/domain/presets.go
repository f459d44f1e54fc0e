package domain

// PresetQuestion is a catalog template a host can pull into an event form.
// EventID, order and the required flag are set when the form is defined.
type PresetQuestion struct {
	QuestionCategory string       `json:"question_category"`
	QuestionKey      string       `json:"question_key"`
	QuestionText     string       `json:"question_text"`
	QuestionType     QuestionType `json:"question_type"`
	Options          []string     `json:"options,omitempty"`
}

// PresetCatalog groups the preset questions hosts compose forms from.
// Keys are unique within a category; reusing a key under a different
// category (e.g. "phone") is allowed.
var PresetCatalog = []PresetQuestion{
	{
		QuestionCategory: "Basic Participant Information",
		QuestionKey:      "full_name",
		QuestionText:     "Full name",
		QuestionType:     QuestionText,
	},
	{
		QuestionCategory: "Basic Participant Information",
		QuestionKey:      "email",
		QuestionText:     "Email address",
		QuestionType:     QuestionEmail,
	},
	{
		QuestionCategory: "Basic Participant Information",
		QuestionKey:      "phone",
		QuestionText:     "Phone number",
		QuestionType:     QuestionText,
	},
	{
		QuestionCategory: "Basic Participant Information",
		QuestionKey:      "college",
		QuestionText:     "College / institution name",
		QuestionType:     QuestionText,
	},
	{
		QuestionCategory: "Experience & Skill-Level",
		QuestionKey:      "skill_level",
		QuestionText:     "How would you rate your skill level?",
		QuestionType:     QuestionDropdown,
		Options:          []string{"Beginner", "Intermediate", "Advanced"},
	},
	{
		QuestionCategory: "Experience & Skill-Level",
		QuestionKey:      "prior_experience",
		QuestionText:     "Describe any prior experience with this topic",
		QuestionType:     QuestionTextarea,
	},
	{
		QuestionCategory: "Experience & Skill-Level",
		QuestionKey:      "portfolio_url",
		QuestionText:     "Link to your portfolio or profile",
		QuestionType:     QuestionURL,
	},
	{
		QuestionCategory: "Event Logistics",
		QuestionKey:      "attendance_mode",
		QuestionText:     "How will you attend?",
		QuestionType:     QuestionDropdown,
		Options:          []string{"In person", "Online"},
	},
	{
		QuestionCategory: "Event Logistics",
		QuestionKey:      "dietary_needs",
		QuestionText:     "Do you have any dietary requirements?",
		QuestionType:     QuestionMultiSelect,
		Options:          []string{"Vegetarian", "Vegan", "Halal", "Gluten-free", "None"},
	},
	{
		QuestionCategory: "Event Logistics",
		QuestionKey:      "needs_accommodation",
		QuestionText:     "Do you need accommodation?",
		QuestionType:     QuestionYesNo,
	},
	{
		QuestionCategory: "Workshop/Hands-On",
		QuestionKey:      "brings_laptop",
		QuestionText:     "Will you bring your own laptop?",
		QuestionType:     QuestionYesNo,
	},
	{
		QuestionCategory: "Workshop/Hands-On",
		QuestionKey:      "team_preference",
		QuestionText:     "Team preference",
		QuestionType:     QuestionDropdown,
		Options:          []string{"Solo", "Pair", "Team of 3-4"},
	},
}
