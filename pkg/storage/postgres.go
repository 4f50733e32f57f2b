package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/article_skeptic/pkg/config"
	"github.com/iWorld-y/article_skeptic/pkg/model"
)

// Storage 分析报告的历史存储，可选能力
type Storage struct {
	db *sql.DB
}

// NewStorage 建立数据库连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_reports (
			id SERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			extraction_method TEXT,
			language_tone TEXT,
			counter_narrative TEXT,
			markdown TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS claims (
			id SERIAL PRIMARY KEY,
			report_id INTEGER REFERENCES analysis_reports(id),
			claim_text TEXT,
			evidence_quality TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS red_flags (
			id SERIAL PRIMARY KEY,
			report_id INTEGER REFERENCES analysis_reports(id),
			description TEXT,
			severity TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS verification_questions (
			id SERIAL PRIMARY KEY,
			report_id INTEGER REFERENCES analysis_reports(id),
			question TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveReport 保存一次分析的报告及其子项
func (s *Storage) SaveReport(report *model.Report, analysis *model.AnalysisResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reportID int
	err = tx.QueryRow(`
		INSERT INTO analysis_reports (url, title, extraction_method, language_tone, counter_narrative, markdown)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		report.URL, report.Title, report.Method,
		analysis.LanguageTone, analysis.CounterNarrative, report.Markdown).Scan(&reportID)
	if err != nil {
		return fmt.Errorf("failed to insert analysis report: %w", err)
	}

	for _, claim := range analysis.CoreClaims {
		_, err = tx.Exec(`
			INSERT INTO claims (report_id, claim_text, evidence_quality)
			VALUES ($1, $2, $3)`,
			reportID, claim.Text, claim.EvidenceQuality)
		if err != nil {
			return fmt.Errorf("failed to insert claim: %w", err)
		}
	}

	for _, flag := range analysis.RedFlags {
		_, err = tx.Exec(`
			INSERT INTO red_flags (report_id, description, severity)
			VALUES ($1, $2, $3)`,
			reportID, flag.Description, flag.Severity)
		if err != nil {
			return fmt.Errorf("failed to insert red flag: %w", err)
		}
	}

	for _, question := range analysis.VerificationQuestions {
		_, err = tx.Exec(`
			INSERT INTO verification_questions (report_id, question)
			VALUES ($1, $2)`,
			reportID, question)
		if err != nil {
			return fmt.Errorf("failed to insert verification question: %w", err)
		}
	}

	return tx.Commit()
}
