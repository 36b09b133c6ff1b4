package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateCourse inserts the course row. Lessons and assessments are
// added separately so a partial generation can still be saved.
func (s *Store) CreateCourse(ctx context.Context, c *domain.Course) error {
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO courses (id, user_id, title, description, duration, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.UserID, c.Title, c.Description, c.Duration,
		string(tags), string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

// AddLessons inserts lessons in a single transaction.
func (s *Store) AddLessons(ctx context.Context, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, l := range lessons {
		objectives, err := json.Marshal(l.Objectives)
		if err != nil {
			return fmt.Errorf("marshal objectives: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO lessons (id, course_id, position, title, content, duration, objectives, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID.String(), l.CourseID.String(), l.Position, l.Title,
			l.Content, l.Duration, string(objectives), l.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert lesson %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

// AddAssessments inserts assessments in a single transaction.
func (s *Store) AddAssessments(ctx context.Context, assessments []domain.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, a := range assessments {
		requirements, err := json.Marshal(a.Requirements)
		if err != nil {
			return fmt.Errorf("marshal requirements: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO assessments (id, course_id, position, title, type, description,
				requirements, language, expected_output, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID.String(), a.CourseID.String(), a.Position, a.Title, string(a.Type),
			a.Description, string(requirements), a.Language, a.ExpectedOutput, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert assessment %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// GetCourse loads a course with its lessons and assessments.
func (s *Store) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, duration, tags, status, created_at, updated_at
		FROM courses WHERE id = ?`, id.String())

	c, err := scanCourse(row)
	if err != nil {
		return nil, err
	}

	if c.Lessons, err = s.lessonsForCourse(ctx, id); err != nil {
		return nil, err
	}
	if c.Assessments, err = s.assessmentsForCourse(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCoursesByUser returns the user's courses newest first with
// lessons loaded.
func (s *Store) ListCoursesByUser(ctx context.Context, userID string) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, duration, tags, status, created_at, updated_at
		FROM courses WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range courses {
		lessons, err := s.lessonsForCourse(ctx, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Lessons = lessons
	}
	return courses, nil
}

// GetAssessment retrieves a single assessment by ID.
func (s *Store) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, course_id, position, title, type, description,
			requirements, language, expected_output, created_at
		FROM assessments WHERE id = ?`, id.String())

	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// CreateEnrollment links a user to a course. Re-enrolling refreshes the
// last access time instead of failing the unique constraint.
func (s *Store) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO course_enrollments (id, user_id, course_id, status, progress_percentage, enrolled_at, last_accessed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET
			last_accessed_at=excluded.last_accessed_at`,
		e.ID.String(), e.UserID, e.CourseID.String(), string(e.Status),
		e.ProgressPercentage, e.EnrolledAt, e.LastAccessedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert enrollment: %w", err)
	}
	return nil
}

func (s *Store) lessonsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_id, position, title, content, duration, objectives, created_at
		FROM lessons WHERE course_id = ? ORDER BY position`, courseID.String())
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		var id, cid, objectivesJSON string
		if err := rows.Scan(&id, &cid, &l.Position, &l.Title, &l.Content, &l.Duration, &objectivesJSON, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse lesson id: %w", err)
		}
		if l.CourseID, err = uuid.Parse(cid); err != nil {
			return nil, fmt.Errorf("parse lesson course id: %w", err)
		}
		if err := json.Unmarshal([]byte(objectivesJSON), &l.Objectives); err != nil {
			return nil, fmt.Errorf("unmarshal objectives: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (s *Store) assessmentsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, course_id, position, title, type, description,
			requirements, language, expected_output, created_at
		FROM assessments WHERE course_id = ? ORDER BY position`, courseID.String())
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (*domain.Course, error) {
	var c domain.Course
	var id, status, tagsJSON string

	err := row.Scan(&id, &c.UserID, &c.Title, &c.Description, &c.Duration,
		&tagsJSON, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}

	if c.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse course id: %w", err)
	}
	c.Status = domain.CourseStatus(status)
	if err := json.Unmarshal([]byte(tagsJSON), &c.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return &c, nil
}

func scanAssessment(row scanner) (*domain.Assessment, error) {
	var a domain.Assessment
	var id, cid, typ, requirementsJSON string

	err := row.Scan(&id, &cid, &a.Position, &a.Title, &typ, &a.Description,
		&requirementsJSON, &a.Language, &a.ExpectedOutput, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse assessment id: %w", err)
	}
	if a.CourseID, err = uuid.Parse(cid); err != nil {
		return nil, fmt.Errorf("parse assessment course id: %w", err)
	}
	a.Type = domain.AssessmentType(typ)
	if err := json.Unmarshal([]byte(requirementsJSON), &a.Requirements); err != nil {
		return nil, fmt.Errorf("unmarshal requirements: %w", err)
	}
	return &a, nil
}
