package job

import (
	"context"
	"time"
)

// StubRepository is an in-memory Repository for tests. Timesheet maps are
// copied on store and load to mimic database round-trips.
type StubRepository struct {
	jobs   map[int]map[int]*Job // userId -> jobId -> job
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{jobs: map[int]map[int]*Job{}, nextId: 1}
}

func (s *StubRepository) GetJobs(_ context.Context, userId int) ([]*Job, error) {
	var jobs []*Job
	for id := 1; id < s.nextId; id++ {
		if job, ok := s.jobs[userId][id]; ok {
			jobs = append(jobs, copyJob(job))
		}
	}
	return jobs, nil
}

func (s *StubRepository) StoreJob(_ context.Context, userId int, job *Job) (int, error) {
	if s.jobs[userId] == nil {
		s.jobs[userId] = map[int]*Job{}
	}
	job.Id = s.nextId
	s.nextId++
	s.jobs[userId][job.Id] = copyJob(job)
	return job.Id, nil
}

func (s *StubRepository) UpdateJob(_ context.Context, userId int, job *Job) error {
	stored, ok := s.jobs[userId][job.Id]
	if !ok {
		return ErrJobNotFound
	}
	updated := copyJob(job)
	updated.Timesheets = stored.Timesheets
	s.jobs[userId][job.Id] = updated
	return nil
}

func (s *StubRepository) StoreTimesheets(_ context.Context, userId int, jobs []*Job) error {
	for _, job := range jobs {
		stored, ok := s.jobs[userId][job.Id]
		if !ok {
			return ErrJobNotFound
		}
		stored.Timesheets = copyTimesheets(job.Timesheets)
	}
	return nil
}

func (s *StubRepository) DeleteJob(_ context.Context, userId int, jobId int) error {
	if _, ok := s.jobs[userId][jobId]; !ok {
		return ErrJobNotFound
	}
	delete(s.jobs[userId], jobId)
	return nil
}

func (s *StubRepository) Cleanup() {
	s.jobs = map[int]map[int]*Job{}
	s.nextId = 1
}

func copyJob(job *Job) *Job {
	copied := *job
	copied.Timesheets = copyTimesheets(job.Timesheets)
	return &copied
}

func copyTimesheets(timesheets map[time.Time]*Timesheet) map[time.Time]*Timesheet {
	copied := make(map[time.Time]*Timesheet, len(timesheets))
	for week, ts := range timesheets {
		record := *ts
		record.Balance = 0
		record.Flexi = 0
		copied[week] = &record
	}
	return copied
}
