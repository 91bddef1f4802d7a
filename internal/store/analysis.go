package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Analysis is one stored analysis run: the result plus the landmark frames
// it was computed from.
type Analysis struct {
	ID        string
	VideoID   string
	Result    *swing.AnalysisResult
	Frames    []pose.Frame
	CreatedAt time.Time
}

// AnalysisRepository provides CRUD operations for analyses.
type AnalysisRepository struct {
	db *sql.DB
}

// Analyses returns the analysis repository for this store.
func (s *Store) Analyses() *AnalysisRepository {
	return &AnalysisRepository{db: s.db}
}

// Create inserts a new analysis into the database.
func (r *AnalysisRepository) Create(a *Analysis) error {
	if a.Result == nil {
		return errors.New("analysis has no result")
	}
	a.CreatedAt = time.Now()

	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	framesJSON, err := json.Marshal(a.Frames)
	if err != nil {
		return fmt.Errorf("failed to encode frames: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO analyses (id, video_id, camera_angle, club_type, club_overridden, overall_score, result, frames, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.VideoID, string(a.Result.CameraAngle.Angle), string(a.Result.Club.ClubType),
		a.Result.ClubTypeOverridden, a.Result.OverallScore, string(resultJSON), string(framesJSON), a.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an analysis by its ID.
func (r *AnalysisRepository) GetByID(id string) (*Analysis, error) {
	a := &Analysis{}
	var resultJSON, framesJSON string

	err := r.db.QueryRow(
		`SELECT id, video_id, result, frames, created_at
		 FROM analyses WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.VideoID, &resultJSON, &framesJSON, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(resultJSON), &a.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	if err := json.Unmarshal([]byte(framesJSON), &a.Frames); err != nil {
		return nil, fmt.Errorf("failed to decode frames: %w", err)
	}

	return a, nil
}

// Summary is the lightweight list view of a stored analysis.
type Summary struct {
	ID             string            `json:"id"`
	VideoID        string            `json:"video_id"`
	CameraAngle    swing.CameraAngle `json:"camera_angle"`
	ClubType       swing.ClubType    `json:"club_type"`
	ClubOverridden bool              `json:"club_overridden"`
	OverallScore   float64           `json:"overall_score"`
	CreatedAt      time.Time         `json:"created_at"`
}

// List retrieves summaries of all analyses, newest first.
func (r *AnalysisRepository) List() ([]*Summary, error) {
	rows, err := r.db.Query(
		`SELECT id, video_id, camera_angle, club_type, club_overridden, overall_score, created_at
		 FROM analyses ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		s := &Summary{}
		var angle, club string

		err := rows.Scan(&s.ID, &s.VideoID, &angle, &club, &s.ClubOverridden, &s.OverallScore, &s.CreatedAt)
		if err != nil {
			return nil, err
		}

		s.CameraAngle = swing.CameraAngle(angle)
		s.ClubType = swing.ClubType(club)
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Delete removes an analysis from the database by its ID.
func (r *AnalysisRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
