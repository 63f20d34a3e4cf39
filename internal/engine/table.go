package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is everything the assistant knows: rules in evaluation order, the
// generic replies and the questions offered to users.
type Table struct {
	Rules       []Rule   `yaml:"rules"`
	Fallback    []string `yaml:"fallback"`
	Suggestions []string `yaml:"suggestions"`
}

func DefaultTable() Table {
	return Table{
		Rules: []Rule{
			{
				Topic:    "library",
				Match:    [][]string{{"library"}},
				Response: "The main library is located in the center of campus, next to the student union building. It's open from 8 AM to 10 PM on weekdays and 10 AM to 6 PM on weekends.",
			},
			{
				Topic:    "exam_registration",
				Match:    [][]string{{"register"}, {"exam"}},
				Response: "You can register for exams through the student portal. Go to 'Academics' > 'Exam Registration'. Make sure to register before the deadline to avoid late fees!",
			},
			{
				Topic:    "dining",
				Match:    [][]string{{"dining", "food", "canteen"}},
				Response: "We have several dining options on campus: the main cafeteria, a food court with various cuisines, a coffee shop in the library, and several snack kiosks across campus.",
			},
			{
				Topic:    "clubs",
				Match:    [][]string{{"student club", "join club"}},
				Response: "To join a student club, visit the Student Activities Office or check out the Club Fair during orientation week. You can also browse and join clubs through the campus app.",
			},
			{
				Topic:    "housing",
				Match:    [][]string{{"housing", "dorm"}},
				Response: "University housing applications are available online through the student portal. The deadline for next semester is November 15th. First-year students are guaranteed housing.",
			},
			{
				Topic:    "parking",
				Match:    [][]string{{"parking"}},
				Response: "Student parking permits can be purchased from the Campus Security office. You'll need your vehicle registration and student ID. Permits cost $150 per semester.",
			},
			{
				Topic:    "wifi",
				Match:    [][]string{{"wifi"}},
				Response: "Campus WiFi is available everywhere on campus. Connect to 'Campus-Net' and use your student credentials to login. If you have issues, contact the IT Help Desk.",
			},
			{
				Topic:    "career",
				Match:    [][]string{{"career"}},
				Response: "The Career Services office offers resume reviews, mock interviews, and career counseling. They're located on the 2nd floor of the Student Success Center.",
			},
			{
				Topic:    "transcript",
				Match:    [][]string{{"transcript"}},
				Response: "You can request official transcripts from the Registrar's Office. There's a small fee for each official transcript. Unofficial transcripts are available for free on the student portal.",
			},
			{
				Topic:    "tuition",
				Match:    [][]string{{"tuition", "payment"}},
				Response: "Tuition payments can be made online through the student portal under 'Finances' > 'Make a Payment'. Payment plans are also available for eligible students.",
			},
		},
		Fallback: []string{
			"I'm not sure I understand. Could you rephrase your question?",
			"I don't have information about that yet. Try asking about campus facilities, registration, or student life.",
			"I'm still learning about university processes. Could you ask something about library, exams, or dining?",
		},
		Suggestions: []string{
			"Where is the library located?",
			"How do I register for exams?",
			"What dining options are available?",
			"How can I join a student club?",
			"What are the housing options?",
			"How do I get a parking permit?",
			"How to connect to campus WiFi?",
			"Where is career services located?",
		},
	}
}

// LoadTable reads a YAML rule table. An empty path yields DefaultTable.
// Sections missing from the file keep their defaults, so a file may
// override only the fallback pool or only the suggestions.
func LoadTable(path string) (Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read rules file: %w", err)
	}
	var fromFile Table
	if err := yaml.Unmarshal(b, &fromFile); err != nil {
		return Table{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if fromFile.Rules != nil {
		t.Rules = fromFile.Rules
	}
	if fromFile.Fallback != nil {
		t.Fallback = fromFile.Fallback
	}
	if fromFile.Suggestions != nil {
		t.Suggestions = fromFile.Suggestions
	}
	return t, nil
}
