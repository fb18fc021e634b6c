package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smartstart/smartstart-money/internal/domain/catalog"
	"github.com/smartstart/smartstart-money/internal/domain/quiz"
)

// CatalogRepository stores the module and scenario catalog. It is a
// catalog.Source for the service and a seeding target for the migrate command.
type CatalogRepository struct {
	conn *Connection
}

// NewCatalogRepository creates a repository on conn.
func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

// Load implements catalog.Source. Both tables are read in one snapshot.
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var (
		modules   []catalog.Module
		scenarios []catalog.Scenario
	)
	err := r.conn.WithTx(ctx, ReadOnlyTxOptions(), func(tx pgx.Tx) error {
		var err error
		if modules, err = r.loadModules(ctx, tx); err != nil {
			return err
		}
		scenarios, err = r.loadScenarios(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return catalog.New(modules, scenarios)
}

func (r *CatalogRepository) loadModules(ctx context.Context, q Querier) ([]catalog.Module, error) {
	rows, err := q.Query(ctx, `
		SELECT id, title, description, duration, difficulty, age_groups, content
		FROM catalog_modules
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var out []catalog.Module
	for rows.Next() {
		var (
			m       catalog.Module
			groups  []string
			content []byte
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &m.Difficulty, &groups, &content); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		m.AgeGroups = toBrackets(groups)
		if m.Content, err = decodeContent(content); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) loadScenarios(ctx context.Context, q Querier) ([]catalog.Scenario, error) {
	rows, err := q.Query(ctx, `
		SELECT id, title, situation, money, age_groups, options
		FROM catalog_scenarios
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var out []catalog.Scenario
	for rows.Next() {
		var (
			s       catalog.Scenario
			groups  []string
			options []byte
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Situation, &s.Money, &groups, &options); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		s.AgeGroups = toBrackets(groups)
		if s.Options, err = decodeOptions(options); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Seed replaces the stored catalog with the given content in one transaction.
// The content is validated first so a bad document never reaches the tables.
func (r *CatalogRepository) Seed(ctx context.Context, modules []catalog.Module, scenarios []catalog.Scenario) error {
	if _, err := catalog.New(modules, scenarios); err != nil {
		return err
	}

	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_modules`); err != nil {
			return fmt.Errorf("clear modules: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_scenarios`); err != nil {
			return fmt.Errorf("clear scenarios: %w", err)
		}

		batch := &pgx.Batch{}
		for i, m := range modules {
			content, err := encodeContent(m.Content)
			if err != nil {
				return fmt.Errorf("module %s: %w", m.ID, err)
			}
			batch.Queue(`
				INSERT INTO catalog_modules (id, position, title, description, duration, difficulty, age_groups, content)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				m.ID, i, m.Title, m.Description, m.Duration, string(m.Difficulty), fromBrackets(m.AgeGroups), content)
		}
		for i, s := range scenarios {
			options, err := encodeOptions(s.Options)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s.ID, err)
			}
			batch.Queue(`
				INSERT INTO catalog_scenarios (id, position, title, situation, money, age_groups, options)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, i, s.Title, s.Situation, s.Money, fromBrackets(s.AgeGroups), options)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert catalog: %w", err)
		}
		return nil
	})
}

var _ catalog.Source = (*CatalogRepository)(nil)

// ═══════════════════════════════════════════════════════════════════════════
// ROW ENCODING
// The domain types hide answers and outcomes from API listings, so the
// JSONB columns use their own shapes that keep every field.
// ═══════════════════════════════════════════════════════════════════════════

type contentRow struct {
	Introduction    string   `json:"introduction"`
	KeyPoints       []string `json:"key_points"`
	PracticalTips   []string `json:"practical_tips"`
	CommonMistakes  []string `json:"common_mistakes"`
	RealLifeExample string   `json:"real_life_example"`
	Quiz            *quizRow `json:"quiz,omitempty"`
}

type quizRow struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type optionRow struct {
	Text        string `json:"text"`
	Outcome     string `json:"outcome"`
	Impact      string `json:"impact"`
	Learning    string `json:"learning"`
	MoneyChange int    `json:"money_change"`
}

func encodeContent(c catalog.ModuleContent) ([]byte, error) {
	row := contentRow{
		Introduction:    c.Introduction,
		KeyPoints:       c.KeyPoints,
		PracticalTips:   c.PracticalTips,
		CommonMistakes:  c.CommonMistakes,
		RealLifeExample: c.RealLifeExample,
	}
	if q := c.Quiz; q != nil {
		row.Quiz = &quizRow{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}
	return json.Marshal(row)
}

func decodeContent(data []byte) (catalog.ModuleContent, error) {
	var row contentRow
	if err := json.Unmarshal(data, &row); err != nil {
		return catalog.ModuleContent{}, fmt.Errorf("decode content: %w", err)
	}
	c := catalog.ModuleContent{
		Introduction:    row.Introduction,
		KeyPoints:       row.KeyPoints,
		PracticalTips:   row.PracticalTips,
		CommonMistakes:  row.CommonMistakes,
		RealLifeExample: row.RealLifeExample,
	}
	if q := row.Quiz; q != nil {
		c.Quiz = &catalog.ModuleQuiz{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}
	return c, nil
}

func encodeOptions(opts []catalog.ScenarioOption) ([]byte, error) {
	rows := make([]optionRow, len(opts))
	for i, o := range opts {
		rows[i] = optionRow{
			Text:        o.Text,
			Outcome:     o.Outcome,
			Impact:      string(o.Impact),
			Learning:    o.Learning,
			MoneyChange: o.MoneyChange,
		}
	}
	return json.Marshal(rows)
}

func decodeOptions(data []byte) ([]catalog.ScenarioOption, error) {
	var rows []optionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	out := make([]catalog.ScenarioOption, len(rows))
	for i, r := range rows {
		out[i] = catalog.ScenarioOption{
			Text:        r.Text,
			Outcome:     r.Outcome,
			Impact:      catalog.Impact(r.Impact),
			Learning:    r.Learning,
			MoneyChange: r.MoneyChange,
		}
	}
	return out, nil
}

func toBrackets(groups []string) []quiz.AgeBracket {
	out := make([]quiz.AgeBracket, len(groups))
	for i, g := range groups {
		out[i] = quiz.AgeBracket(g)
	}
	return out
}

func fromBrackets(groups []quiz.AgeBracket) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = string(g)
	}
	return out
}
