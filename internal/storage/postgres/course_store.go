package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentor3d/professor/internal/domain"
)

// CreateCourse inserts the course row. Lessons and assessments are
// added separately so a partial generation can still be saved.
func (s *Store) CreateCourse(ctx context.Context, c *domain.Course) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO courses (id, user_id, title, description, duration, tags, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.Title, c.Description, c.Duration,
		c.Tags, string(c.Status), c.CreatedAt, c.UpdatedAt,
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

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range lessons {
		_, err := tx.Exec(ctx, `
			INSERT INTO lessons (id, course_id, position, title, content, duration, objectives, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, l.CourseID, l.Position, l.Title, l.Content, l.Duration, l.Objectives, l.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert lesson %s: %w", l.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// AddAssessments inserts assessments in a single transaction.
func (s *Store) AddAssessments(ctx context.Context, assessments []domain.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assessments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assessments (id, course_id, position, title, type, description,
				requirements, language, expected_output, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			a.ID, a.CourseID, a.Position, a.Title, string(a.Type),
			a.Description, a.Requirements, a.Language, a.ExpectedOutput, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert assessment %s: %w", a.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// GetCourse loads a course with its lessons and assessments.
func (s *Store) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, duration, tags, status, created_at, updated_at
		FROM courses WHERE id = $1`, id)

	var c domain.Course
	var status string
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Duration,
		&c.Tags, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}
	c.Status = domain.CourseStatus(status)

	if c.Lessons, err = s.lessonsForCourse(ctx, id); err != nil {
		return nil, err
	}
	if c.Assessments, err = s.assessmentsForCourse(ctx, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCoursesByUser returns the user's courses newest first with
// lessons loaded.
func (s *Store) ListCoursesByUser(ctx context.Context, userID string) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, title, description, duration, tags, status, created_at, updated_at
		FROM courses WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		var status string
		err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Duration,
			&c.Tags, &status, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		c.Status = domain.CourseStatus(status)
		courses = append(courses, c)
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
	row := s.pool.QueryRow(ctx, `
		SELECT id, course_id, position, title, type, description,
			requirements, language, expected_output, created_at
		FROM assessments WHERE id = $1`, id)

	var a domain.Assessment
	var typ string
	err := row.Scan(&a.ID, &a.CourseID, &a.Position, &a.Title, &typ, &a.Description,
		&a.Requirements, &a.Language, &a.ExpectedOutput, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	a.Type = domain.AssessmentType(typ)
	return &a, nil
}

// CreateEnrollment links a user to a course. Re-enrolling refreshes the
// last access time instead of failing the unique constraint.
func (s *Store) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO course_enrollments (id, user_id, course_id, status, progress_percentage, enrolled_at, last_accessed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			last_accessed_at = EXCLUDED.last_accessed_at`,
		e.ID, e.UserID, e.CourseID, string(e.Status), e.ProgressPercentage, e.EnrolledAt, e.LastAccessedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert enrollment: %w", err)
	}
	return nil
}

func (s *Store) lessonsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Lesson, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, course_id, position, title, content, duration, objectives, created_at
		FROM lessons WHERE course_id = $1 ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		err := rows.Scan(&l.ID, &l.CourseID, &l.Position, &l.Title, &l.Content,
			&l.Duration, &l.Objectives, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (s *Store) assessmentsForCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Assessment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, course_id, position, title, type, description,
			requirements, language, expected_output, created_at
		FROM assessments WHERE course_id = $1 ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		var a domain.Assessment
		var typ string
		err := rows.Scan(&a.ID, &a.CourseID, &a.Position, &a.Title, &typ, &a.Description,
			&a.Requirements, &a.Language, &a.ExpectedOutput, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		a.Type = domain.AssessmentType(typ)
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
