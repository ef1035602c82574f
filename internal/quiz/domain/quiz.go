package domain

import (
	"errors"
	"fmt"

	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// ErrInvalidAnswer is returned when an answer is missing or not one of the question's options.
var ErrInvalidAnswer = errors.New("invalid quiz answer")

// Option is one choice of a question.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Question is one step of the subscription quiz.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

const (
	QuestionStrength  = "strength"
	QuestionFlavor    = "flavor"
	QuestionBrewing   = "brewing"
	QuestionFrequency = "frequency"
)

var questions = []Question{
	{
		ID:       QuestionStrength,
		Question: "How do you like your coffee?",
		Options: []Option{
			{Value: "mild", Label: "Mild & Smooth", Description: "Lighter roasts with subtle flavors"},
			{Value: "balanced", Label: "Balanced", Description: "Medium roast, the best of both worlds"},
			{Value: "bold", Label: "Bold & Strong", Description: "Dark roast with intense flavor"},
		},
	},
	{
		ID:       QuestionFlavor,
		Question: "What flavors do you enjoy?",
		Options: []Option{
			{Value: "fruity", Label: "Fruity & Floral", Description: "Bright, citrusy, with berry notes"},
			{Value: "chocolaty", Label: "Chocolaty & Nutty", Description: "Rich, smooth, with caramel hints"},
			{Value: "earthy", Label: "Earthy & Spiced", Description: "Deep, complex, with warm spices"},
		},
	},
	{
		ID:       QuestionBrewing,
		Question: "How do you brew your coffee?",
		Options: []Option{
			{Value: "espresso", Label: "Espresso Machine", Description: "Quick, concentrated shots"},
			{Value: "pourover", Label: "Pour Over / Drip", Description: "Clean, nuanced extraction"},
			{Value: "french-press", Label: "French Press / Immersion", Description: "Full-bodied, rich brews"},
		},
	},
	{
		ID:       QuestionFrequency,
		Question: "How often do you drink coffee?",
		Options: []Option{
			{Value: "daily-multiple", Label: "Multiple cups a day", Description: "Can't start the day without it"},
			{Value: "daily-one", Label: "About one cup a day", Description: "A cherished daily ritual"},
			{Value: "few-times", Label: "A few times a week", Description: "Weekend coffee enthusiast"},
		},
	},
}

// Questions returns the quiz in the order it is asked.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = append([]Option(nil), q.Options...)
	}
	return out
}

// Answers holds one option value per question.
type Answers struct {
	Strength  string `json:"strength"`
	Flavor    string `json:"flavor"`
	Brewing   string `json:"brewing"`
	Frequency string `json:"frequency"`
}

func (a Answers) byQuestion() map[string]string {
	return map[string]string{
		QuestionStrength:  a.Strength,
		QuestionFlavor:    a.Flavor,
		QuestionBrewing:   a.Brewing,
		QuestionFrequency: a.Frequency,
	}
}

// Validate requires every question to be answered with one of its options.
func (a Answers) Validate() error {
	given := a.byQuestion()
	var errs []error
	for _, q := range questions {
		value := given[q.ID]
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalidAnswer, q.ID))
			continue
		}
		if !q.hasOption(value) {
			errs = append(errs, fmt.Errorf("%w: %q is not an option for %s", ErrInvalidAnswer, value, q.ID))
		}
	}
	return errors.Join(errs...)
}

func (q Question) hasOption(value string) bool {
	for _, option := range q.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// Recommend picks a coffee from the catalog-ordered list. Bold strength or chocolaty flavor
// wins a dark roast; otherwise mild or fruity wins a light roast; otherwise a medium roast.
// When the list has no coffee of the wanted roast the first coffee is returned.
func Recommend(coffee []catalog.Product, answers Answers) (catalog.Product, bool) {
	if len(coffee) == 0 {
		return catalog.Product{}, false
	}

	var roast catalog.RoastLevel
	switch {
	case answers.Strength == "bold" || answers.Flavor == "chocolaty":
		roast = catalog.RoastDark
	case answers.Strength == "mild" || answers.Flavor == "fruity":
		roast = catalog.RoastLight
	default:
		roast = catalog.RoastMedium
	}

	for _, product := range coffee {
		if product.RoastLevel == roast {
			return product, true
		}
	}
	return coffee[0], true
}
