// Package catalog holds the read-only reference content of SmartStart Money:
// learning modules and practice scenarios, each tagged with the age brackets
// it is meant for.
package catalog

import (
	"context"
	"fmt"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
	"github.com/smartstart/smartstart-money/internal/domain/shared"
)

// Difficulty of a learning module.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Impact of a scenario choice.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Module is a short lesson.
type Module struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Duration    string            `json:"duration" yaml:"duration"`
	Difficulty  Difficulty        `json:"difficulty" yaml:"difficulty"`
	AgeGroups   []quiz.AgeBracket `json:"age_groups" yaml:"age_groups"`
	Content     ModuleContent     `json:"content" yaml:"content"`
}

// ModuleContent is the lesson body.
type ModuleContent struct {
	Introduction    string      `json:"introduction" yaml:"introduction"`
	KeyPoints       []string    `json:"key_points" yaml:"key_points"`
	PracticalTips   []string    `json:"practical_tips" yaml:"practical_tips"`
	CommonMistakes  []string    `json:"common_mistakes" yaml:"common_mistakes"`
	RealLifeExample string      `json:"real_life_example" yaml:"real_life_example"`
	Quiz            *ModuleQuiz `json:"quiz,omitempty" yaml:"quiz,omitempty"`
}

// ModuleQuiz is the single check question at the end of a module.
type ModuleQuiz struct {
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"-" yaml:"correct_answer"`
	Explanation   string   `json:"-" yaml:"explanation"`
}

// QuizResult is the outcome of answering a module quiz.
type QuizResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Check grades an answer index.
func (q ModuleQuiz) Check(answer int) (QuizResult, error) {
	if answer < 0 || answer >= len(q.Options) {
		return QuizResult{}, shared.ErrOptionOutOfRange
	}
	return QuizResult{
		Correct:       answer == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}, nil
}

// Scenario is a practice money decision.
type Scenario struct {
	ID        string            `json:"id" yaml:"id"`
	Title     string            `json:"title" yaml:"title"`
	Situation string            `json:"situation" yaml:"situation"`
	Money     int               `json:"money" yaml:"money"`
	AgeGroups []quiz.AgeBracket `json:"age_groups" yaml:"age_groups"`
	Options   []ScenarioOption  `json:"options" yaml:"options"`
}

// ScenarioOption is one possible decision in a scenario. Outcome fields are
// hidden from listings and revealed by Choose.
type ScenarioOption struct {
	Text        string `json:"text" yaml:"text"`
	Outcome     string `json:"-" yaml:"outcome"`
	Impact      Impact `json:"-" yaml:"impact"`
	Learning    string `json:"-" yaml:"learning"`
	MoneyChange int    `json:"-" yaml:"money_change"`
}

// Outcome is what happens after picking a scenario option.
type Outcome struct {
	Option      int    `json:"option"`
	Text        string `json:"text"`
	Outcome     string `json:"outcome"`
	Impact      Impact `json:"impact"`
	Learning    string `json:"learning"`
	MoneyChange int    `json:"money_change"`
	MoneyBefore int    `json:"money_before"`
	MoneyAfter  int    `json:"money_after"`
}

// Choose resolves option index i.
func (s Scenario) Choose(i int) (Outcome, error) {
	if i < 0 || i >= len(s.Options) {
		return Outcome{}, shared.ErrOptionOutOfRange
	}
	o := s.Options[i]
	return Outcome{
		Option:      i,
		Text:        o.Text,
		Outcome:     o.Outcome,
		Impact:      o.Impact,
		Learning:    o.Learning,
		MoneyChange: o.MoneyChange,
		MoneyBefore: s.Money,
		MoneyAfter:  s.Money + o.MoneyChange,
	}, nil
}

// EligibleFor reports whether the module targets the bracket.
func (m Module) EligibleFor(age quiz.AgeBracket) bool {
	return hasBracket(m.AgeGroups, age)
}

// EligibleFor reports whether the scenario targets the bracket.
func (s Scenario) EligibleFor(age quiz.AgeBracket) bool {
	return hasBracket(s.AgeGroups, age)
}

func hasBracket(groups []quiz.AgeBracket, age quiz.AgeBracket) bool {
	for _, g := range groups {
		if g == age {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════
// Catalog
// ═══════════════════════════════════════════════════════════════════════════

// Catalog is an immutable set of modules and scenarios.
type Catalog struct {
	modules   []Module
	scenarios []Scenario
	moduleIdx map[string]int
	scenIdx   map[string]int
}

// New validates and indexes the content.
func New(modules []Module, scenarios []Scenario) (*Catalog, error) {
	c := &Catalog{
		modules:   append([]Module(nil), modules...),
		scenarios: append([]Scenario(nil), scenarios...),
		moduleIdx: make(map[string]int, len(modules)),
		scenIdx:   make(map[string]int, len(scenarios)),
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() error {
	for i, m := range c.modules {
		if err := validateModule(m); err != nil {
			return err
		}
		if _, dup := c.moduleIdx[m.ID]; dup {
			return invalid("duplicate module id %q", m.ID)
		}
		c.moduleIdx[m.ID] = i
	}
	for i, s := range c.scenarios {
		if err := validateScenario(s); err != nil {
			return err
		}
		if _, dup := c.scenIdx[s.ID]; dup {
			return invalid("duplicate scenario id %q", s.ID)
		}
		c.scenIdx[s.ID] = i
	}
	return nil
}

func validateModule(m Module) error {
	if m.ID == "" {
		return invalid("module without id")
	}
	if m.Title == "" {
		return invalid("module %q has no title", m.ID)
	}
	if err := validateGroups(m.AgeGroups); err != nil {
		return invalid("module %q: %v", m.ID, err)
	}
	if q := m.Content.Quiz; q != nil {
		if len(q.Options) < 2 {
			return invalid("module %q quiz needs at least two options", m.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return invalid("module %q quiz correct answer %d out of range", m.ID, q.CorrectAnswer)
		}
	}
	return nil
}

func validateScenario(s Scenario) error {
	if s.ID == "" {
		return invalid("scenario without id")
	}
	if s.Title == "" {
		return invalid("scenario %q has no title", s.ID)
	}
	if err := validateGroups(s.AgeGroups); err != nil {
		return invalid("scenario %q: %v", s.ID, err)
	}
	if len(s.Options) == 0 {
		return invalid("scenario %q has no options", s.ID)
	}
	for i, o := range s.Options {
		switch o.Impact {
		case ImpactPositive, ImpactNegative, ImpactNeutral:
		default:
			return invalid("scenario %q option %d has impact %q", s.ID, i, o.Impact)
		}
	}
	return nil
}

func validateGroups(groups []quiz.AgeBracket) error {
	if len(groups) == 0 {
		return fmt.Errorf("no age groups")
	}
	for _, g := range groups {
		if !g.IsValid() {
			return fmt.Errorf("unknown age group %q", g)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return shared.WrapError("catalog", "Validate", shared.ErrValidation, "catalog is invalid", fmt.Errorf(format, args...))
}

// Modules returns every module in catalog order.
func (c *Catalog) Modules() []Module {
	return append([]Module(nil), c.modules...)
}

// Scenarios returns every scenario in catalog order.
func (c *Catalog) Scenarios() []Scenario {
	return append([]Scenario(nil), c.scenarios...)
}

// Module looks up a module by id.
func (c *Catalog) Module(id string) (Module, error) {
	i, ok := c.moduleIdx[id]
	if !ok {
		return Module{}, shared.ErrModuleNotFound
	}
	return c.modules[i], nil
}

// Scenario looks up a scenario by id.
func (c *Catalog) Scenario(id string) (Scenario, error) {
	i, ok := c.scenIdx[id]
	if !ok {
		return Scenario{}, shared.ErrScenarioNotFound
	}
	return c.scenarios[i], nil
}

// ModulesFor returns the modules eligible for the bracket, in catalog order.
func (c *Catalog) ModulesFor(age quiz.AgeBracket) []Module {
	var out []Module
	for _, m := range c.modules {
		if m.EligibleFor(age) {
			out = append(out, m)
		}
	}
	return out
}

// ScenariosFor returns the scenarios eligible for the bracket, in catalog order.
func (c *Catalog) ScenariosFor(age quiz.AgeBracket) []Scenario {
	var out []Scenario
	for _, s := range c.scenarios {
		if s.EligibleFor(age) {
			out = append(out, s)
		}
	}
	return out
}

// EligibleModule looks up a module and checks it targets the bracket.
func (c *Catalog) EligibleModule(id string, age quiz.AgeBracket) (Module, error) {
	m, err := c.Module(id)
	if err != nil {
		return Module{}, err
	}
	if !m.EligibleFor(age) {
		return Module{}, shared.ErrNotEligible
	}
	return m, nil
}

// EligibleScenario looks up a scenario and checks it targets the bracket.
func (c *Catalog) EligibleScenario(id string, age quiz.AgeBracket) (Scenario, error) {
	s, err := c.Scenario(id)
	if err != nil {
		return Scenario{}, err
	}
	if !s.EligibleFor(age) {
		return Scenario{}, shared.ErrNotEligible
	}
	return s, nil
}

// Source loads a catalog from some backing store.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}
