package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrJobNotFound = errors.New("job not found")

type Repository interface {
	GetJobs(ctx context.Context, userId int) ([]*Job, error)
	StoreJob(ctx context.Context, userId int, job *Job) (int, error)
	UpdateJob(ctx context.Context, userId int, job *Job) error
	StoreTimesheets(ctx context.Context, userId int, jobs []*Job) error
	DeleteJob(ctx context.Context, userId int, jobId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetJobs(ctx context.Context, userId int) ([]*Job, error) {
	query := `SELECT id, hashtag, name, short_name, contracted_hours, annual_holiday_hours,
				pro_rata_bank_holiday, employment_start, employment_end, flexi_offset_min, timesheets
				FROM job WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query jobs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		var job Job
		var encodedTimesheets string
		if err := rows.Scan(
			&job.Id,
			&job.Hashtag,
			&job.Name,
			&job.ShortName,
			&job.ContractedHours,
			&job.AnnualHolidayHours,
			&job.ProRataBankHoliday,
			&job.EmploymentStart,
			&job.EmploymentEnd,
			&job.FlexiOffsetMinutes,
			&encodedTimesheets,
		); err != nil {
			return nil, err
		}
		job.EmploymentStart = asUTCDate(job.EmploymentStart)
		job.EmploymentEnd = asUTCDate(job.EmploymentEnd)
		job.Timesheets, err = decodeTimesheets(encodedTimesheets)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

func (r *RepositoryImpl) StoreJob(ctx context.Context, userId int, job *Job) (int, error) {
	encodedTimesheets, err := encodeTimesheets(job.Timesheets)
	if err != nil {
		return 0, err
	}
	query := `INSERT INTO job (user_id, hashtag, name, short_name, contracted_hours, annual_holiday_hours,
				pro_rata_bank_holiday, employment_start, employment_end, flexi_offset_min, timesheets)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	var id int
	err = r.db.QueryRow(ctx, query,
		userId,
		job.Hashtag,
		job.Name,
		job.ShortName,
		job.ContractedHours,
		job.AnnualHolidayHours,
		job.ProRataBankHoliday,
		job.EmploymentStart,
		job.EmploymentEnd,
		job.FlexiOffsetMinutes,
		encodedTimesheets,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store job: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) UpdateJob(ctx context.Context, userId int, job *Job) error {
	query := `UPDATE job SET hashtag = $1, name = $2, short_name = $3, contracted_hours = $4,
				annual_holiday_hours = $5, pro_rata_bank_holiday = $6, employment_start = $7,
				employment_end = $8, flexi_offset_min = $9
				WHERE id = $10 AND user_id = $11`
	tag, err := r.db.Exec(ctx, query,
		job.Hashtag,
		job.Name,
		job.ShortName,
		job.ContractedHours,
		job.AnnualHolidayHours,
		job.ProRataBankHoliday,
		job.EmploymentStart,
		job.EmploymentEnd,
		job.FlexiOffsetMinutes,
		job.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update job: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// StoreTimesheets persists the timesheet maps of all given jobs in one
// transaction, so a refresh is visible either fully or not at all.
func (r *RepositoryImpl) StoreTimesheets(ctx context.Context, userId int, jobs []*Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, job := range jobs {
		encodedTimesheets, err := encodeTimesheets(job.Timesheets)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE job SET timesheets = $1 WHERE id = $2 AND user_id = $3`,
			encodedTimesheets, job.Id, userId)
		if err != nil {
			err := fmt.Errorf("could not store timesheets for job %d: %w", job.Id, err)
			log.Error(err)
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrJobNotFound
		}
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) DeleteJob(ctx context.Context, userId int, jobId int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM job WHERE id = $1 AND user_id = $2`, jobId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete job: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// asUTCDate strips any time-of-day and location a DATE column scan may carry.
func asUTCDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
