package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caltime/caltime/internal/event_bus"
	"github.com/caltime/caltime/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrDuplicateHashtag = errors.New("a job with this hashtag already exists")
var ErrInvalidHashtag = errors.New("hashtag must start with '#'")

type Service interface {
	GetJobs(ctx context.Context) ([]*Job, error)
	CreateJob(ctx context.Context, job *Job) (*Job, error)
	UpdateJob(ctx context.Context, job *Job) (*Job, error)
	DeleteJob(ctx context.Context, jobId int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) GetJobs(ctx context.Context) ([]*Job, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetJobs(ctx, userId)
}

func (s *ServiceImpl) CreateJob(ctx context.Context, job *Job) (*Job, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.normalize(ctx, job, 0); err != nil {
		return nil, err
	}
	if job.Timesheets == nil {
		job.Timesheets = map[time.Time]*Timesheet{}
	}
	id, err := s.repo.StoreJob(ctx, userId, job)
	if err != nil {
		return nil, err
	}
	job.Id = id
	return job, nil
}

func (s *ServiceImpl) UpdateJob(ctx context.Context, job *Job) (*Job, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.normalize(ctx, job, job.Id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateJob(ctx, userId, job); err != nil {
		return nil, err
	}

	// A changed hashtag, contract, or employment window invalidates derived
	// timesheet data. Subscribers re-derive it from the calendar.
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.JobUpdatedEvent, event_bus.JobUpdated{
		JobId:           job.Id,
		Hashtag:         job.Hashtag,
		ContractedHours: job.ContractedHours,
		EmploymentStart: job.EmploymentStart,
		EmploymentEnd:   job.EmploymentEnd,
	}))
	if err != nil {
		log.Warnf("job update processed with handler errors: %v", err)
	}
	return job, nil
}

func (s *ServiceImpl) DeleteJob(ctx context.Context, jobId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteJob(ctx, userId, jobId)
}

func (s *ServiceImpl) normalize(ctx context.Context, job *Job, selfId int) error {
	job.Hashtag = strings.ToLower(strings.TrimSpace(job.Hashtag))
	if !strings.HasPrefix(job.Hashtag, "#") {
		return ErrInvalidHashtag
	}
	if job.EmploymentEnd.IsZero() {
		job.EmploymentEnd = NeverEnds
	}

	existing, err := s.GetJobs(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.Id != selfId && other.Hashtag == job.Hashtag {
			return ErrDuplicateHashtag
		}
	}
	return nil
}
