package job

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/caltime/caltime/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository, int) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)

	var userId int
	err := db.QueryRow(ctx,
		"INSERT INTO users (uid, username) VALUES ('test-uid', 'test-user') RETURNING id").Scan(&userId)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository, userId
}

func sampleJob() *Job {
	j := NewJob("#hct")
	j.Name = "Hospital Clinical Team"
	j.ShortName = "hct"
	j.ContractedHours = 10
	j.AnnualHolidayHours = 56
	j.ProRataBankHoliday = true
	j.EmploymentStart = time.Date(2023, time.September, 4, 0, 0, 0, 0, time.UTC)
	j.FlexiOffsetMinutes = 980
	return j
}

func TestRepositoryImpl_StoreJob(t *testing.T) {
	t.Run("should store and load a job with all fields", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		stored := sampleJob()

		// when
		id, err := repo.StoreJob(ctx, userId, stored)

		// then
		require.NoError(t, err)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		loaded := jobs[0]
		assert.Equal(t, id, loaded.Id)
		assert.Equal(t, "#hct", loaded.Hashtag)
		assert.Equal(t, "Hospital Clinical Team", loaded.Name)
		assert.Equal(t, 10.0, loaded.ContractedHours)
		assert.Equal(t, 56.0, loaded.AnnualHolidayHours)
		assert.True(t, loaded.ProRataBankHoliday)
		assert.Equal(t, stored.EmploymentStart, loaded.EmploymentStart)
		assert.Equal(t, NeverEnds, loaded.EmploymentEnd)
		assert.Equal(t, 980, loaded.FlexiOffsetMinutes)
		assert.Empty(t, loaded.Timesheets)
	})

	t.Run("should reject a duplicate hashtag for the same user", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		_, err := repo.StoreJob(ctx, userId, sampleJob())
		require.NoError(t, err)

		// when
		_, err = repo.StoreJob(ctx, userId, sampleJob())

		// then
		assert.Error(t, err)
	})

	t.Run("should not list jobs of other users", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		_, err := repo.StoreJob(ctx, userId, sampleJob())
		require.NoError(t, err)

		// when
		jobs, err := repo.GetJobs(ctx, userId+1)

		// then
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})
}

func TestRepositoryImpl_UpdateJob(t *testing.T) {
	t.Run("should update job fields", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		stored := sampleJob()
		id, err := repo.StoreJob(ctx, userId, stored)
		require.NoError(t, err)

		stored.Id = id
		stored.Hashtag = "#clinic"
		stored.ContractedHours = 18.75
		stored.EmploymentEnd = time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC)

		// when
		err = repo.UpdateJob(ctx, userId, stored)

		// then
		require.NoError(t, err)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "#clinic", jobs[0].Hashtag)
		assert.Equal(t, 18.75, jobs[0].ContractedHours)
		assert.Equal(t, stored.EmploymentEnd, jobs[0].EmploymentEnd)
	})

	t.Run("should return ErrJobNotFound for an unknown job", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		missing := sampleJob()
		missing.Id = 999

		// when
		err := repo.UpdateJob(ctx, userId, missing)

		// then
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}

func TestRepositoryImpl_StoreTimesheets(t *testing.T) {
	week := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	nextWeek := week.AddDate(0, 0, 7)

	t.Run("should round-trip the weekly buckets", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		stored := sampleJob()
		id, err := repo.StoreJob(ctx, userId, stored)
		require.NoError(t, err)
		stored.Id = id
		stored.Timesheets = map[time.Time]*Timesheet{
			week:     {Work: 660, Holiday: 0, Bank: 0, Sick: 30},
			nextWeek: {Work: 0, Holiday: 450, Bank: 0, Sick: 0},
		}

		// when
		err = repo.StoreTimesheets(ctx, userId, []*Job{stored})

		// then
		require.NoError(t, err)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		require.Len(t, jobs[0].Timesheets, 2)
		assert.Equal(t, 660, jobs[0].Timesheets[week].Work)
		assert.Equal(t, 30, jobs[0].Timesheets[week].Sick)
		assert.Equal(t, 450, jobs[0].Timesheets[nextWeek].Holiday)
	})

	t.Run("should not persist derived balance and flexi", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		stored := sampleJob()
		id, err := repo.StoreJob(ctx, userId, stored)
		require.NoError(t, err)
		stored.Id = id
		stored.Timesheets = map[time.Time]*Timesheet{
			week: {Work: 660, Balance: 60, Flexi: 1040},
		}

		// when
		err = repo.StoreTimesheets(ctx, userId, []*Job{stored})

		// then the loaded sheet has only the raw buckets
		require.NoError(t, err)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, 0, jobs[0].Timesheets[week].Balance)
		assert.Equal(t, 0, jobs[0].Timesheets[week].Flexi)
	})

	t.Run("should fail the whole batch when one job is missing", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		stored := sampleJob()
		id, err := repo.StoreJob(ctx, userId, stored)
		require.NoError(t, err)
		stored.Id = id
		stored.Timesheets = map[time.Time]*Timesheet{week: {Work: 600}}
		missing := sampleJob()
		missing.Id = 999
		missing.Hashtag = "#missing"

		// when
		err = repo.StoreTimesheets(ctx, userId, []*Job{stored, missing})

		// then nothing was written
		assert.ErrorIs(t, err, ErrJobNotFound)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		assert.Empty(t, jobs[0].Timesheets)
	})
}

func TestRepositoryImpl_DeleteJob(t *testing.T) {
	t.Run("should delete a job", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		id, err := repo.StoreJob(ctx, userId, sampleJob())
		require.NoError(t, err)

		// when
		err = repo.DeleteJob(ctx, userId, id)

		// then
		require.NoError(t, err)
		jobs, err := repo.GetJobs(ctx, userId)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("should return ErrJobNotFound for an unknown job", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)

		// when
		err := repo.DeleteJob(ctx, userId, 999)

		// then
		assert.ErrorIs(t, err, ErrJobNotFound)
	})
}
